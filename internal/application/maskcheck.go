package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"

	"mask-detector/internal/domain/entity"
)

// ErrDecode возвращается, если байты не удалось декодировать в изображение.
var ErrDecode = errors.New("failed to decode image")

// MaskCheckService проверяет присланные фото на наличие масок.
type MaskCheckService struct {
	users     *UserService
	detection *DetectionService
}

// CheckOutput итог проверки фото и картинка с разметкой областей.
type CheckOutput struct {
	Result    *entity.ImageResult
	Faces     []*entity.FaceRecord
	Annotated []byte
}

// NewMaskCheckService создаёт сервис проверки фото.
func NewMaskCheckService(users *UserService, detection *DetectionService) *MaskCheckService {
	return &MaskCheckService{users: users, detection: detection}
}

// Check прогоняет фото через конвейер. Разметки у фото нет, поэтому
// ожидаемым считается число найденных лиц.
func (s *MaskCheckService) Check(ctx context.Context, userID, chatID int64, photo []byte) (*CheckOutput, error) {
	if s.detection == nil {
		return nil, ErrNoDetector
	}

	if _, err := s.users.SetState(ctx, userID, chatID, entity.StateProcessing); err != nil {
		return nil, err
	}

	out, err := s.check(ctx, photo)
	if err != nil {
		// пользователь не должен остаться в состоянии обработки
		_, _ = s.users.Cancel(ctx, userID, chatID)
		return nil, err
	}

	if _, err := s.users.Finish(ctx, userID, chatID, out.Result); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MaskCheckService) check(ctx context.Context, photo []byte) (*CheckOutput, error) {
	img, err := imaging.Decode(bytes.NewReader(photo), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	result, faces, err := s.detection.Detect(ctx, img, -1)
	if err != nil {
		return nil, err
	}

	var annotated []byte
	if len(faces) > 0 {
		drawn, err := s.detection.Annotate(img, faces)
		if err != nil {
			return nil, fmt.Errorf("annotate: %w", err)
		}
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, drawn, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
			return nil, fmt.Errorf("encode annotated image: %w", err)
		}
		annotated = buf.Bytes()
	}

	return &CheckOutput{Result: result, Faces: faces, Annotated: annotated}, nil
}
