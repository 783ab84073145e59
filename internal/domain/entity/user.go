package entity

// UserState состояние пользователя в диалоге
type UserState string

const (
	StateMainMenu      UserState = "main_menu"      // В главном меню
	StateAwaitingPhoto UserState = "awaiting_photo" // Ожидание фото для проверки маски
	StateProcessing    UserState = "processing"     // Обработка изображения
)

// User представляет пользователя бота
type User struct {
	ID         int64        // Telegram User ID
	ChatID     int64        // Telegram Chat ID
	State      UserState    // Текущее состояние пользователя
	Checks     int          // Сколько фото проверено за сессию
	LastResult *ImageResult // Итог последней проверки
}

// NewUser создаёт нового пользователя с начальным состоянием
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}

// RecordCheck сохраняет итог проверки и возвращает пользователя в меню.
func (u *User) RecordCheck(result *ImageResult) {
	u.Checks++
	u.LastResult = result
	u.State = StateMainMenu
}
