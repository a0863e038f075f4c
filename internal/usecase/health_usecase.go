package usecase

import (
	"context"
	"net/http"
	"time"

	"ordersvc/internal/clock"
	repo "ordersvc/internal/repository"
)

type HealthUsecase struct {
	db    repo.Pinger
	clock clock.Clock
}

func NewHealthUsecase(db repo.Pinger, c clock.Clock) *HealthUsecase {
	return &HealthUsecase{db: db, clock: c}
}

type HealthOutput struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// Check はDBにSELECT 1を投げる。失敗は503で原因をそのまま返す
func (u *HealthUsecase) Check(ctx context.Context) (HealthOutput, error) {
	if err := u.db.Ping(ctx); err != nil {
		return HealthOutput{}, wrapHTTPError(http.StatusServiceUnavailable, "DB not ready: "+err.Error(), err)
	}
	return HealthOutput{
		Status: "ok",
		Time:   u.clock.Now().UTC().Format(time.RFC3339Nano),
	}, nil
}
