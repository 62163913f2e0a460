package app

import (
	"registry-config/internal/adapters"
	"registry-config/internal/ports"
)

type Service struct {
	Store ports.ConfigStorePort
}

func NewService() Service {
	return Service{
		Store: adapters.NewConfigFileAdapter(),
	}
}
