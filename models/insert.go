package models

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Insert payloads used by the offline seeding path. IDs and timestamps are
// assigned by the storage adapter.

// NewSkill holds the fields required to create a Skill
type NewSkill struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Icon        string `json:"icon" validate:"required"`
	Order       int    `json:"order" validate:"gte=0"`
}

// NewExperience holds the fields required to create an Experience
type NewExperience struct {
	Company     string `json:"company" validate:"required"`
	Role        string `json:"role" validate:"required"`
	Period      string `json:"period" validate:"required"`
	Description string `json:"description" validate:"required"`
	Order       int    `json:"order" validate:"gte=0"`
}

// NewProject holds the fields required to create a Project
type NewProject struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	ProjectBrief *string  `json:"project_brief,omitempty"`
	Client       *string  `json:"client,omitempty"`
	Location     *string  `json:"location,omitempty"`
	Tags         []string `json:"tags,omitempty" validate:"omitempty,dive,required"`
	Featured     bool     `json:"featured"`
	Order        int      `json:"order" validate:"gte=0"`
}

// NewProjectImage holds the fields required to attach an image to a project
type NewProjectImage struct {
	ProjectID  string  `json:"projectId" validate:"required"`
	ImageURL   *string `json:"imageUrl,omitempty" validate:"omitempty,url"`
	ImageData  *string `json:"imageData,omitempty" validate:"omitempty,base64"`
	Caption    *string `json:"caption,omitempty"`
	ImageOrder *int    `json:"imageOrder,omitempty" validate:"omitempty,gte=0"`
}

// NewProfile holds the fields required to create the Profile
type NewProfile struct {
	Name         string  `json:"name" validate:"required"`
	Title        string  `json:"title" validate:"required"`
	Bio          string  `json:"bio" validate:"required"`
	Email        string  `json:"email" validate:"required,email"`
	Phone        *string `json:"phone,omitempty"`
	Location     *string `json:"location,omitempty"`
	LinkedinURL  *string `json:"linkedinUrl,omitempty" validate:"omitempty,url"`
	TwitterURL   *string `json:"twitterUrl,omitempty" validate:"omitempty,url"`
	InstagramURL *string `json:"instagramUrl,omitempty" validate:"omitempty,url"`
	AvatarURL    *string `json:"avatarUrl,omitempty" validate:"omitempty,url"`
	AvatarData   *string `json:"avatarData,omitempty" validate:"omitempty,base64"`
	ResumeURL    *string `json:"resumeUrl,omitempty" validate:"omitempty,url"`
	ResumeData   *string `json:"resumeData,omitempty" validate:"omitempty,base64"`
}

// NewUser holds the fields required to create a User. Password is plain
// text here and hashed before it is stored.
type NewUser struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks an insert payload against its validation rules and
// returns one error listing every failing field.
func Validate(payload any) error {
	err := instance().Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid %T: %s", payload, strings.Join(msgs, "; "))
}
