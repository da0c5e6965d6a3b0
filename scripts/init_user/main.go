package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/visitbeacon/internal/config"
	"github.com/visitbeacon/internal/db"
)

func main() {
	cfg := config.Load()

	var (
		username    = flag.String("username", "admin", "operator username")
		password    = flag.String("password", "admin123", "operator password")
		host        = flag.String("host", "", "optional hostname the new campaign accepts visits from")
		name        = flag.String("campaign", "", "create a campaign with this name for the user")
		description = flag.String("description", "", "campaign description")
	)
	flag.Parse()

	// 初始化数据库
	gdb, err := db.Open(cfg.DatabaseURL, nil)
	if err != nil {
		log.Fatal("数据库初始化失败:", err)
	}
	defer db.Close(gdb)

	user, err := db.EnsureUser(gdb, *username, *password)
	if err != nil {
		log.Fatal("创建用户失败:", err)
	}
	if user == nil {
		log.Fatal("用户名与密码不能为空")
	}
	fmt.Printf("用户: %s (id=%d)\n", user.Username, user.ID)

	if strings.TrimSpace(*name) == "" {
		return
	}

	campaign := db.Campaign{UserID: user.ID, Name: optional(*name), Host: optional(*host), Description: optional(*description)}
	if err := db.NewCampaignStore(gdb).CreateCampaign(context.Background(), &campaign); err != nil {
		log.Fatal("创建活动失败:", err)
	}

	fmt.Printf("活动创建成功: id=%d host=%q\n", campaign.ID, campaign.AllowedHost())
	fmt.Printf("上报地址: POST /api/campaign/%d?url=...\n", campaign.ID)
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
