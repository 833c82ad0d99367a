package usecase

import (
	"context"

	"hearing-care-backend/pkg/redis"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	mailConfigured   bool
	placesConfigured bool
}

func NewHealthUsecase(mailConfigured, placesConfigured bool) HealthUsecase {
	return &healthUsecase{
		mailConfigured:   mailConfigured,
		placesConfigured: placesConfigured,
	}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"status": "ok",
		"mail":   configured(u.mailConfigured),
		"places": configured(u.placesConfigured),
		"redis":  "disabled",
	}
	if redis.Client() != nil {
		if err := redis.HealthCheck(ctx); err != nil {
			status["redis"] = "unreachable"
		} else {
			status["redis"] = "ok"
		}
	}
	return status
}

func configured(ok bool) string {
	if ok {
		return "configured"
	}
	return "missing"
}
