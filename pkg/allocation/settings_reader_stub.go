package allocation

import (
	"context"

	"github.com/herbertjm76/bare-resource-horizon/pkg/allocweek"
)

type SettingsReaderStub struct {
	StartDay allocweek.WeekStartDay
	Err      error
}

func NewSettingsReaderStub(startDay allocweek.WeekStartDay) *SettingsReaderStub {
	return &SettingsReaderStub{StartDay: startDay}
}

func (s *SettingsReaderStub) WeekStartDay(ctx context.Context, companyId int) (allocweek.WeekStartDay, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return s.StartDay, nil
}
