package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/visitbeacon/internal/config"
	"github.com/visitbeacon/internal/db"
	"github.com/visitbeacon/internal/logging"
	"github.com/visitbeacon/internal/service"
	"gorm.io/gorm"
)

const defaultAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_14_6) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/95.0.4638.54 Safari/537.36"

type options struct {
	seedFile   string
	campaignID uint
	days       int
	url        string
	now        time.Time
	randSeed   int64
}

// 测试数据生成器：导入种子数据后为一个活动伪造最近几天的访问。
func main() {
	cfg := config.Load()

	var (
		seedFile   = flag.String("seed", "data/db.json", "JSON seed file to hydrate before spoofing visits (skipped when missing)")
		campaignID = flag.Uint("campaign", 0, "campaign id to spoof visits for (defaults to the first campaign)")
		days       = flag.Int("days", 3, "how many days of visits to spoof")
		url        = flag.String("url", "https://neetchy.com", "page url recorded on spoofed visits")
	)
	flag.Parse()

	logger, closer, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: "console", File: cfg.LogFile})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer closer.Close()

	gdb, err := db.Open(cfg.DatabaseURL, nil)
	if err != nil {
		log.Fatal("数据库初始化失败:", err)
	}
	defer db.Close(gdb)

	fmt.Println("开始生成测试数据...")

	records, err := run(context.Background(), gdb, options{
		seedFile:   *seedFile,
		campaignID: *campaignID,
		days:       *days,
		url:        *url,
		now:        time.Now(),
		randSeed:   time.Now().UnixNano(),
	}, logger)
	if err != nil {
		log.Fatal("生成测试数据失败:", err)
	}

	fmt.Printf("测试数据生成完成！共写入 %d 条模拟访问\n", records)
}

func run(ctx context.Context, gdb *gorm.DB, opts options, logger *slog.Logger) (int, error) {
	if opts.seedFile != "" {
		if _, err := os.Stat(opts.seedFile); err == nil {
			if _, err := db.HydrateFile(ctx, gdb, opts.seedFile, logger); err != nil {
				return 0, err
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return 0, err
		} else {
			logger.Info("seed file not found, skipping hydration", "path", opts.seedFile)
		}
	}

	campaign, err := pickCampaign(ctx, gdb, opts.campaignID)
	if err != nil {
		return 0, err
	}

	if opts.days <= 0 {
		opts.days = 3
	}
	since := opts.now.Add(-time.Duration(opts.days) * 24 * time.Hour)

	template := db.Visit{
		CampaignID: campaign.ID,
		IP:         "127.0.0.1",
		URL:        opts.url,
		Agent:      defaultAgent,
		Zone:       "America/New_York",
		Screen:     "1920x1080",
	}

	start := time.Now()
	store := db.NewCampaignStore(gdb)
	records, err := service.NewMockVisitGenerator(store, opts.randSeed).Generate(ctx, template, since, opts.now)
	if err != nil {
		return records, err
	}
	logger.Debug("added mocked visit records", "records", records, "campaign_id", campaign.ID, "elapsed", time.Since(start).String())
	return records, nil
}

func pickCampaign(ctx context.Context, gdb *gorm.DB, id uint) (*db.Campaign, error) {
	if id != 0 {
		campaign, err := db.NewCampaignStore(gdb).FindCampaign(ctx, id)
		if err != nil {
			return nil, err
		}
		if campaign == nil {
			return nil, fmt.Errorf("campaign %d not found", id)
		}
		return campaign, nil
	}

	var campaign db.Campaign
	if err := gdb.WithContext(ctx).Order("id").First(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("no campaigns available, provide a seed file or create one with init_user")
		}
		return nil, err
	}
	return &campaign, nil
}
