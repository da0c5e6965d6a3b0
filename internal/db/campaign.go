package db

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Campaign 是访问记录所归属的追踪对象。Host 非空时只接受该主机名下页面上报的访问。
type Campaign struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	UserID      uint    `gorm:"not null;index" json:"user_id"`
	Host        *string `json:"host"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Time        int64   `gorm:"not null" json:"time"`
}

// TableName 指定自定义表名。
func (Campaign) TableName() string {
	return "campaigns"
}

// BeforeCreate 在未指定时间时写入当前 Unix 秒。
func (c *Campaign) BeforeCreate(tx *gorm.DB) error {
	if c.Time == 0 {
		c.Time = time.Now().Unix()
	}
	return nil
}

// AllowedHost 返回去除空白后的主机名限制；空字符串表示不限制。
func (c *Campaign) AllowedHost() string {
	if c == nil || c.Host == nil {
		return ""
	}
	return strings.TrimSpace(*c.Host)
}
