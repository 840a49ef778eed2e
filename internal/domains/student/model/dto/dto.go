package dto

import (
	"galpao/internal/domains/student/model"
	"galpao/shared"
	gDto "galpao/shared/dto"
	gModel "galpao/shared/model"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RegisterStudentRequest struct {
	Name     string `json:"name"               validate:"required,max=100"`
	Payment  string `json:"payment"            validate:"required,max=200"`
	Credits  int    `json:"credits"            validate:"gte=0"`
	Password string `json:"password,omitempty" validate:"omitempty,password"`
}

// Normalize trims the free-text fields before validation.
func (r *RegisterStudentRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Payment = strings.TrimSpace(r.Payment)
	r.Password = strings.TrimSpace(r.Password)
}

// PlainPassword returns the requested password or the default derived from the name.
func (r *RegisterStudentRequest) PlainPassword() string {
	if r.Password != "" {
		return r.Password
	}

	return model.DefaultPassword(r.Name)
}

func (r *RegisterStudentRequest) ToModel(username, hashedPassword string, now time.Time) model.Student {
	return model.Student{
		ID:       uuid.NewString(),
		Name:     r.Name,
		Password: hashedPassword,
		Payment:  r.Payment,
		Credits:  r.Credits,
		Metadata: gModel.NewMetadata(now, username),
	}
}

// UpdateStudentRequest holds the columns an existing registration overwrites.
type UpdateStudentRequest struct {
	Password string `db:"password"`
	Payment  string `db:"payment"`
	Credits  int    `db:"credits"`
}

// ToFields keeps credits even when zero, since zero is a valid balance.
func (r UpdateStudentRequest) ToFields(username string) map[string]any {
	fields := shared.TransformFields(r, username)
	fields[model.FieldCredits] = r.Credits

	return fields
}

type StudentResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Payment string `json:"payment"`
	Credits int    `json:"credits"`
	gDto.Metadata
}

func (r *StudentResponse) FromModel(mod model.Student) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Payment = mod.Payment
	r.Credits = mod.Credits
	r.Metadata.FromModel(mod.Metadata)
}

type RegisterStudentResponse struct {
	Student StudentResponse `json:"student"`
	Updated bool            `json:"updated"`
}

type GetStudentsResponse struct {
	Students  []StudentResponse `json:"students"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetStudentsResponse) FromModels(models []model.Student, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Students = make([]StudentResponse, len(models))
	for i, mod := range models {
		r.Students[i].FromModel(mod)
	}
}
