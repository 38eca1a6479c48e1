package db

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 管理员角色取值
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super-admin"
)

// Admin 定义了后台管理员模型，密码以 bcrypt 哈希存储且不参与序列化。
type Admin struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	Role      string    `gorm:"default:admin" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SetPassword 将明文密码哈希后写入模型。
func (a *Admin) SetPassword(plain string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.Password = string(hashed)
	return nil
}

// CheckPassword 校验明文密码与存储哈希是否匹配。
func (a *Admin) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(plain)) == nil
}

// EnsureAdmin 存在性检查：若提供的邮箱与密码均非空且不存在对应账号，
// 则创建一个超级管理员作为引导账号。
func EnsureAdmin(gdb *gorm.DB, email, password, name string) error {
	trimmedEmail := strings.TrimSpace(email)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedEmail == "" || trimmedPassword == "" {
		return nil
	}

	var existing Admin
	err := gdb.Where("email = ?", trimmedEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	admin := Admin{
		Email: trimmedEmail,
		Name:  strings.TrimSpace(name),
		Role:  RoleSuperAdmin,
	}
	if admin.Name == "" {
		admin.Name = "Administrator"
	}
	if err := admin.SetPassword(trimmedPassword); err != nil {
		return err
	}

	return gdb.Create(&admin).Error
}
