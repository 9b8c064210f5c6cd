package share

import "SchoolPick/entity"

type Core interface {
	ClientConfig() entity.ClientConfig
	ShareQR(size int) ([]byte, error)
}
