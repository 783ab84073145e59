package container

import (
	app "mask-detector/internal/application"
	"mask-detector/internal/domain/port"
)

type Container struct {
	UserService      *app.UserService
	DetectionService *app.DetectionService
	MaskCheckService *app.MaskCheckService
}

func New(userRepo port.UserRepository, detectors *app.Detectors, proc port.ImageProcessor, opts app.Options) (*Container, error) {
	detection, err := app.NewDetectionService(detectors, proc, opts)
	if err != nil {
		return nil, err
	}

	userService := app.NewUserService(userRepo)
	maskCheckService := app.NewMaskCheckService(userService, detection)

	return &Container{
		UserService:      userService,
		DetectionService: detection,
		MaskCheckService: maskCheckService,
	}, nil
}
