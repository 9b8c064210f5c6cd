package school

import "SchoolPick/entity"

type Core interface {
	Schools() []entity.School
	School(code string) (*entity.School, error)
	Reasons() []entity.Reason
}
