package database

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Email          string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash   string    `json:"-" gorm:"size:255"`
	GoogleID       *string   `json:"-" gorm:"size:64;uniqueIndex"`
	FullName       string    `json:"full_name" gorm:"size:100"`
	ProfilePicture *string   `json:"profile_picture"`
	Role           string    `json:"role" gorm:"size:20;default:'user'"`
	BranchID       *uint     `json:"branch_id"`
	Branch         *Branch   `json:"-"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

type Branch struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	BranchCode string    `json:"code" gorm:"size:20;uniqueIndex;not null"`
	Name       string    `json:"name" gorm:"size:100;not null"`
	CreatedAt  time.Time `json:"-"`

	Users []User `json:"-"`
}

type UploadLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	BranchID  *uint     `json:"branch_id"`
	FileName  string    `json:"file_name" gorm:"size:255"`
	FileSize  int64     `json:"file_size"`
	Status    string    `json:"status" gorm:"size:20"`
	CreatedAt time.Time `json:"created_at"`
}
