package user

import (
	"context"
	"time"
)

// User is one account (usuarios row). DisplayName concatenates nombre and
// apellido_paterno the way the order listings join it.
type User struct {
	ID           int64     `gorm:"column:usuario_id;primaryKey" json:"usuario_id"`
	Email        string    `gorm:"column:correo_electronico;uniqueIndex;size:128;not null" json:"correo_electronico"`
	PasswordHash string    `gorm:"column:contrasena_hash;size:255;not null" json:"-"`
	FirstName    string    `gorm:"column:nombre;size:64;not null" json:"nombre"`
	LastName     string    `gorm:"column:apellido_paterno;size:64" json:"apellido_paterno,omitempty"`
	Role         string    `gorm:"column:rol;size:32;not null;default:cliente" json:"rol"`
	CreatedAt    time.Time `gorm:"column:fecha_registro" json:"fecha_registro"`
	UpdatedAt    time.Time `gorm:"column:fecha_actualizacion" json:"-"`
}

func (User) TableName() string { return "usuarios" }

// DisplayName is the name shown on order listings.
func (u *User) DisplayName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Repository is the user data-access boundary.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) error
}
