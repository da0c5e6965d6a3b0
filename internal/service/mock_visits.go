package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/visitbeacon/internal/db"
)

const defaultMockMaxStep = time.Hour

// visitWriter 只需要写入能力，生成器不做任何校验判断。
type visitWriter interface {
	InsertVisit(ctx context.Context, visit *db.Visit) error
}

// MockVisitGenerator 为本地开发伪造一段时间内的访问记录。
type MockVisitGenerator struct {
	store   visitWriter
	rnd     *rand.Rand
	maxStep time.Duration
}

// NewMockVisitGenerator 创建生成器，相邻两次访问间隔为 1 秒到 1 小时之间的随机值。
func NewMockVisitGenerator(store visitWriter, seed int64) *MockVisitGenerator {
	return &MockVisitGenerator{
		store:   store,
		rnd:     rand.New(rand.NewSource(seed)),
		maxStep: defaultMockMaxStep,
	}
}

// WithMaxStep 调整相邻访问的最大间隔。
func (g *MockVisitGenerator) WithMaxStep(d time.Duration) *MockVisitGenerator {
	if d < time.Second {
		return g
	}
	g.maxStep = d
	return g
}

// Generate 以 template 为模板，从 since 开始按随机间隔写入访问，直到超过 now。
// 返回写入的条数。
func (g *MockVisitGenerator) Generate(ctx context.Context, template db.Visit, since, now time.Time) (int, error) {
	if since.After(now) {
		return 0, errors.New("since must not be after now")
	}

	records := 0
	ts := since
	for {
		ts = ts.Add(g.nextStep())
		if ts.After(now) {
			return records, nil
		}
		if err := ctx.Err(); err != nil {
			return records, err
		}

		visit := template
		visit.ID = 0
		visit.Time = ts.Unix()
		if err := g.store.InsertVisit(ctx, &visit); err != nil {
			return records, err
		}
		records++
	}
}

func (g *MockVisitGenerator) nextStep() time.Duration {
	seconds := int64(g.maxStep / time.Second)
	return time.Duration(1+g.rnd.Int63n(seconds)) * time.Second
}
