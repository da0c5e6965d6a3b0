package service

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/visitbeacon/internal/db"
)

// VisitStore 是接收访问所需的最小存储能力。
type VisitStore interface {
	FindCampaign(ctx context.Context, id uint) (*db.Campaign, error)
	InsertVisit(ctx context.Context, visit *db.Visit) error
}

// VisitCandidate 是调用方上报、尚未决定是否落库的访问数据。
type VisitCandidate struct {
	IP     string
	URL    string
	Agent  string
	Zone   string
	Screen string
	// Time 为 0 时由存储写入服务端时间。
	Time int64
}

// IngestService 依次校验活动、主机名后写入访问记录。自身不保存状态。
type IngestService struct {
	store  VisitStore
	logger *slog.Logger
}

// NewIngestService 创建 IngestService；logger 为 nil 时使用 slog.Default。
func NewIngestService(store VisitStore, logger *slog.Logger) *IngestService {
	if logger == nil {
		logger = slog.Default()
	}
	return &IngestService{store: store, logger: logger}
}

// Ingest 判断并写入一次访问。
// 活动 id 为空、活动不存在或主机名不匹配时返回 (false, nil)，不写入任何数据；
// 只有存储层的故障会以 error 返回。
func (s *IngestService) Ingest(ctx context.Context, campaignID *uint, candidate VisitCandidate) (bool, error) {
	if campaignID == nil {
		s.logger.DebugContext(ctx, "skipping write", "reason", "null campaign_id")
		return false, nil
	}
	id := *campaignID

	campaign, err := s.store.FindCampaign(ctx, id)
	if err != nil {
		return false, err
	}
	if campaign == nil {
		s.logger.DebugContext(ctx, "skipping write", "reason", "invalid campaign_id", "campaign_id", id)
		return false, nil
	}

	if host := campaign.AllowedHost(); host != "" && !HostMatches(host, candidate.URL) {
		s.logger.DebugContext(ctx, "skipping write", "reason", "failed hostname validation",
			"campaign_id", id, "host", host, "url", candidate.URL)
		return false, nil
	}

	visit := db.Visit{
		CampaignID: id,
		IP:         candidate.IP,
		URL:        candidate.URL,
		Agent:      candidate.Agent,
		Zone:       candidate.Zone,
		Screen:     candidate.Screen,
		Time:       candidate.Time,
	}
	if err := s.store.InsertVisit(ctx, &visit); err != nil {
		return false, err
	}

	s.logger.DebugContext(ctx, "visit recorded", "campaign_id", id, "visit_id", visit.ID)
	return true, nil
}

// HostMatches 报告 rawURL 解析出的主机名是否与 host 相同（忽略大小写）。
// 使用完整的 URL 解析而非字符串前缀比较，notexample.com 不会匹配 example.com。
func HostMatches(host, rawURL string) bool {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	hostname := parsed.Hostname()
	if hostname == "" {
		return false
	}
	return strings.EqualFold(hostname, strings.TrimSpace(host))
}
