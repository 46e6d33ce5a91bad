// Package chore implements the chore board inside rooms.
package chore

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	"your_chores_server/internal/dao/mysql/repository"
	"your_chores_server/internal/dto/request"
	"your_chores_server/internal/dto/respond"
	"your_chores_server/internal/infrastructure/mq"
	"your_chores_server/internal/model"
	"your_chores_server/pkg/errorx"
)

type choreService struct {
	repos  *repository.Repositories
	broker mq.EventBroker
}

// NewChoreService creates the chore service.
func NewChoreService(repos *repository.Repositories, broker mq.EventBroker) *choreService {
	return &choreService{repos: repos, broker: broker}
}

// requireMember verifies the caller belongs to the room.
func requireMember(tx *repository.Repositories, roomId uint, callerUuid string) (*model.RoomMember, error) {
	member, err := tx.RoomMember.FindByRoomAndUser(roomId, callerUuid)
	if err != nil {
		if errorx.IsCode(err, errorx.CodeNotFound) {
			return nil, errorx.New(errorx.CodeForbidden, "You are not a member of this room")
		}
		return nil, err
	}
	return member, nil
}

func (s *choreService) CreateChore(callerUuid string, req request.CreateChoreRequest) (*respond.ChoreRespond, error) {
	if req.Urgency < model.UrgencyLow || req.Urgency > model.UrgencyHigh {
		return nil, errorx.New(errorx.CodeInvalidParam, "Unknown urgency level")
	}

	var created model.Chore
	var recipients []string
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		roomInfo, err := tx.Room.FindByID(req.RoomId)
		if err != nil {
			if errorx.IsCode(err, errorx.CodeNotFound) {
				return errorx.New(errorx.CodeNotFound, "The room does not exist")
			}
			return err
		}
		member, err := requireMember(tx, req.RoomId, callerUuid)
		if err != nil {
			return err
		}
		// the posting policy binds plain members only
		if !member.Owner && !roomInfo.AllowMembersToPost {
			return errorx.New(errorx.CodeForbidden, "Only owners can post chores in this room")
		}

		created = model.Chore{
			RoomID:      req.RoomId,
			Description: req.Description,
			Urgency:     req.Urgency,
		}
		if err := tx.Chore.Create(&created); err != nil {
			return err
		}

		members, err := tx.RoomMember.FindByRoomID(req.RoomId)
		if err != nil {
			return err
		}
		for _, m := range members {
			if m.UserUuid != callerUuid {
				recipients = append(recipients, m.UserUuid)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(&mq.Event{
		Type:       mq.EventChoreCreated,
		RoomId:     req.RoomId,
		ActorUuid:  callerUuid,
		Recipients: recipients,
	})
	rsp := toRespond(&created)
	return &rsp, nil
}

func (s *choreService) CompleteChore(callerUuid string, req request.CompleteChoreRequest) (*respond.ChoreRespond, error) {
	var updated model.Chore
	var recipients []string
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		if _, err := requireMember(tx, req.RoomId, callerUuid); err != nil {
			return err
		}
		choreInfo, err := tx.Chore.FindByRoomAndID(req.RoomId, req.ChoreId)
		if err != nil {
			if errorx.IsCode(err, errorx.CodeNotFound) {
				return errorx.New(errorx.CodeNotFound, "The chore does not exist")
			}
			return err
		}
		if choreInfo.Done {
			return errorx.New(errorx.CodeInvalidParam, "The chore is already done")
		}

		choreInfo.Done = true
		choreInfo.DoerUuid = sql.NullString{String: callerUuid, Valid: true}
		choreInfo.DoneAt = sql.NullTime{Time: time.Now(), Valid: true}
		if err := tx.Chore.Update(choreInfo); err != nil {
			return err
		}
		updated = *choreInfo

		members, err := tx.RoomMember.FindByRoomID(req.RoomId)
		if err != nil {
			return err
		}
		for _, m := range members {
			if m.UserUuid != callerUuid {
				recipients = append(recipients, m.UserUuid)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(&mq.Event{
		Type:       mq.EventChoreCompleted,
		RoomId:     req.RoomId,
		ActorUuid:  callerUuid,
		Recipients: recipients,
	})
	rsp := toRespond(&updated)
	return &rsp, nil
}

func (s *choreService) GetRoomChores(callerUuid string, roomId uint) ([]respond.ChoreRespond, error) {
	_, err := s.repos.RoomMember.FindByRoomAndUser(roomId, callerUuid)
	if err != nil {
		if errorx.IsCode(err, errorx.CodeNotFound) {
			return nil, errorx.New(errorx.CodeForbidden, "You are not a member of this room")
		}
		zap.L().Error("load membership", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	rows, err := s.repos.Chore.FindByRoomID(roomId)
	if err != nil {
		zap.L().Error("load chores", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	items := make([]respond.ChoreRespond, 0, len(rows))
	for i := range rows {
		items = append(items, toRespond(&rows[i]))
	}
	return items, nil
}

func (s *choreService) GetMyChores(callerUuid string) ([]respond.ChoreRespond, error) {
	memberships, err := s.repos.RoomMember.FindByUserUuid(callerUuid)
	if err != nil {
		zap.L().Error("load memberships", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	roomIds := make([]uint, 0, len(memberships))
	for _, m := range memberships {
		roomIds = append(roomIds, m.RoomID)
	}
	if len(roomIds) == 0 {
		return []respond.ChoreRespond{}, nil
	}

	rows, err := s.repos.Chore.FindByRoomIDs(roomIds)
	if err != nil {
		zap.L().Error("load chores", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	items := make([]respond.ChoreRespond, 0, len(rows))
	for i := range rows {
		items = append(items, toRespond(&rows[i]))
	}
	return items, nil
}

func (s *choreService) publish(event *mq.Event) {
	if len(event.Recipients) == 0 {
		return
	}
	event.OccurredAt = time.Now()
	if err := s.broker.Publish(event); err != nil {
		zap.L().Error("publish event", zap.String("type", string(event.Type)), zap.Error(err))
	}
}

func toRespond(c *model.Chore) respond.ChoreRespond {
	rsp := respond.ChoreRespond{
		ChoreId:     c.ID,
		RoomId:      c.RoomID,
		Description: c.Description,
		Urgency:     c.Urgency,
		Done:        c.Done,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}
	if c.DoerUuid.Valid {
		rsp.DoerUuid = c.DoerUuid.String
	}
	if c.DoneAt.Valid {
		rsp.DoneAt = c.DoneAt.Time.Format(time.RFC3339)
	}
	return rsp
}
