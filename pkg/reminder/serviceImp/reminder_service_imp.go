package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/KavinduWickramasekara98/UrbanRoots-backend/entities"
	farmerRepo "github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/farmer/repository"
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/interval"
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/push"
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/reminder/service"
	ucRepo "github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/usercrop/repository"
)

const reminderTitle = "Time to Water!"

type reminderSvc struct {
	farmers   farmerRepo.FarmerRepository
	userCrops ucRepo.UserCropRepository
	sender    push.Sender
	batchSize int
	now       func() time.Time
	log       zerolog.Logger
}

type Option func(*reminderSvc)

// WithBatchSize sets how many due records are fetched per query. 0 fetches
// everything at once.
func WithBatchSize(n int) Option { return func(s *reminderSvc) { s.batchSize = n } }

func WithClock(now func() time.Time) Option { return func(s *reminderSvc) { s.now = now } }

func NewReminderService(farmers farmerRepo.FarmerRepository, userCrops ucRepo.UserCropRepository, sender push.Sender, log zerolog.Logger, opts ...Option) service.ReminderService {
	s := &reminderSvc{
		farmers:   farmers,
		userCrops: userCrops,
		sender:    sender,
		batchSize: 200,
		now:       time.Now,
		log:       log,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func reminderBody(uc entities.UserCrop) string {
	crop := strings.TrimSpace(uc.CropType)
	if crop == "" {
		crop = uc.CropID
	}
	return fmt.Sprintf("Your %s needs watering. It should be watered every %s.", crop, uc.WateringInterval)
}

func (s *reminderSvc) Sweep(ctx context.Context) (service.Report, error) {
	now := s.now().UTC()
	rep := service.Report{Now: now}

	afterID := ""
	for {
		due, err := s.userCrops.ListDue(ctx, now, afterID, s.batchSize)
		if err != nil {
			return rep, fmt.Errorf("list due user crops: %w", err)
		}
		if len(due) == 0 {
			break
		}
		for _, uc := range due {
			res, err := s.process(ctx, now, uc)
			rep.Results = append(rep.Results, res)
			if err != nil {
				return rep, err
			}
		}
		if s.batchSize <= 0 || len(due) < s.batchSize {
			break
		}
		afterID = due[len(due)-1].ID
	}

	if len(rep.Results) == 0 {
		s.log.Debug().Time("now", now).Msg("no crops due for watering")
		return rep, nil
	}
	s.log.Info().
		Int("due", len(rep.Results)).
		Int("sent", rep.Count(service.NotifySent)).
		Int("skipped", rep.Count(service.NotifySkipped)).
		Int("failed", rep.Count(service.NotifyFailed)).
		Int("rescheduled", rep.Rescheduled()).
		Msg("watering sweep finished")
	return rep, nil
}

func (s *reminderSvc) process(ctx context.Context, now time.Time, uc entities.UserCrop) (service.RecordResult, error) {
	res := service.RecordResult{UserCropID: uc.ID, UserID: uc.UserID}
	log := s.log.With().Str("user_crop", uc.ID).Str("user", uc.UserID).Logger()

	farmer, err := s.farmers.FindByID(ctx, uc.UserID)
	switch {
	case errors.Is(err, entities.ErrNotFound):
		// same as a farmer without a token
	case err != nil:
		res.Err = err
		return res, fmt.Errorf("load farmer %s: %w", uc.UserID, err)
	}
	if farmer == nil || strings.TrimSpace(farmer.FCMToken) == "" {
		log.Debug().Msg("no device token, reminder skipped")
		res.Notify = service.NotifySkipped
		res.Reschedule = service.RescheduleSkipped
		return res, nil
	}

	id, err := s.sender.Send(ctx, push.Message{
		Token: farmer.FCMToken,
		Title: reminderTitle,
		Body:  reminderBody(uc),
		Data:  map[string]string{"userCropId": uc.ID, "cropId": uc.CropID},
	})
	if err != nil {
		ev := log.Warn().Err(err)
		if push.IsUnregistered(err) {
			ev = ev.Bool("unregistered", true)
		}
		ev.Msg("watering reminder not delivered")
		res.Notify = service.NotifyFailed
		res.Err = err
	} else {
		res.Notify = service.NotifySent
		res.MessageID = id
	}

	every, ok := interval.Parse(uc.WateringInterval)
	if !ok {
		log.Warn().Str("interval", uc.WateringInterval).Msg("cannot reschedule, invalid watering interval")
		res.Reschedule = service.RescheduleInvalidInterval
		return res, nil
	}
	next := now.Add(every)
	if err := s.userCrops.SetNextWatering(ctx, uc.ID, next); err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			// removed between the query and the write
			res.Reschedule = service.RescheduleSkipped
			return res, nil
		}
		res.Reschedule = service.RescheduleFailed
		res.Err = err
		return res, fmt.Errorf("reschedule user crop %s: %w", uc.ID, err)
	}
	res.Reschedule = service.RescheduleOK
	res.Next = &next
	return res, nil
}
