package db

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User 定义了运营账号；Campaign.UserID 指向这里，但接收访问的链路不会读取它。
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:32;uniqueIndex;not null" json:"username"`
	Password string `gorm:"size:128;not null" json:"password"`
	Time     int64  `gorm:"not null" json:"time"`
}

// TableName 指定自定义表名。
func (User) TableName() string {
	return "users"
}

// BeforeCreate 在未指定时间时写入当前 Unix 秒。
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Time == 0 {
		u.Time = time.Now().Unix()
	}
	return nil
}

// SetPassword 使用 bcrypt 哈希明文密码；已是 bcrypt 哈希的值原样保留。
func (u *User) SetPassword(password string) error {
	if password == "" {
		return errors.New("password required")
	}
	if isBcryptHash(password) {
		u.Password = password
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword 校验明文密码是否与存储的哈希匹配。
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// EnsureUser 存在性检查：若提供的用户名与密码均非空且不存在对应账号，则创建一个 bcrypt 哈希的用户。
// 返回现有或新建的用户；用户名或密码为空时返回 nil。
func EnsureUser(gdb *gorm.DB, username, password string) (*User, error) {
	trimmedUser := strings.TrimSpace(username)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedUser == "" || trimmedPassword == "" {
		return nil, nil
	}

	if gdb == nil {
		return nil, errors.New("database not initialized")
	}

	var existing User
	err := gdb.Where("username = ?", trimmedUser).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := User{Username: trimmedUser}
	if err := user.SetPassword(trimmedPassword); err != nil {
		return nil, err
	}
	if err := gdb.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func isBcryptHash(value string) bool {
	_, err := bcrypt.Cost([]byte(value))
	return err == nil
}
