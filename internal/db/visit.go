package db

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ErrInvalidVisit 表示访问记录缺少写入所需的字段。
var ErrInvalidVisit = errors.New("invalid visit")

// Visit 记录一次被接受的页面访问，只追加不修改。
type Visit struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CampaignID uint   `gorm:"not null;index" json:"campaign_id"`
	IP         string `gorm:"not null;default:''" json:"ip"`
	URL        string `gorm:"not null" json:"url"`
	Agent      string `gorm:"not null;default:''" json:"agent"`
	Zone       string `gorm:"not null;default:''" json:"zone"`
	Screen     string `gorm:"not null;default:''" json:"screen"`
	Time       int64  `gorm:"not null;index" json:"time"`
}

// TableName 指定自定义表名。
func (Visit) TableName() string {
	return "visits"
}

// Validate 检查必填字段（campaign_id 与 url），错误包装 ErrInvalidVisit。
func (v *Visit) Validate() error {
	var missing []string
	if v.CampaignID == 0 {
		missing = append(missing, "campaign_id")
	}
	if strings.TrimSpace(v.URL) == "" {
		missing = append(missing, "url")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidVisit, strings.Join(missing, ", "))
	}
	return nil
}

// BeforeCreate 校验必填字段，并在未指定时间时写入当前 Unix 秒。
func (v *Visit) BeforeCreate(tx *gorm.DB) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if v.Time == 0 {
		v.Time = time.Now().Unix()
	}
	return nil
}
