// Package room implements the membership engine: room lifecycle, join
// requests, invitations and ownership transitions.
//
// Every mutation runs in a single database transaction that first takes
// a row lock on the room, so concurrent mutations of one room are
// serialized. Capacity checks additionally lock the affected user row.
// Two invariants hold at every commit: an existing room has at least
// one owner, and a room whose last membership is removed no longer
// exists (its pending requests and chores are removed with it).
package room

import (
	"time"

	"go.uber.org/zap"

	"your_chores_server/internal/dao/mysql/repository"
	"your_chores_server/internal/dto/request"
	"your_chores_server/internal/dto/respond"
	"your_chores_server/internal/infrastructure/mq"
	"your_chores_server/internal/model"
	"your_chores_server/pkg/constants"
	"your_chores_server/pkg/errorx"
)

type roomService struct {
	repos  *repository.Repositories
	broker mq.EventBroker
}

// NewRoomService creates the membership engine.
func NewRoomService(repos *repository.Repositories, broker mq.EventBroker) *roomService {
	return &roomService{repos: repos, broker: broker}
}

// ==================== internal helpers ====================

// lockRoom takes the room's row lock inside tx. All mutation paths go
// through here first.
func lockRoom(tx *repository.Repositories, roomId uint) (*model.Room, error) {
	roomInfo, err := tx.Room.LockByID(roomId)
	if err != nil {
		if errorx.IsCode(err, errorx.CodeNotFound) {
			return nil, errorx.New(errorx.CodeNotFound, "The room does not exist")
		}
		return nil, err
	}
	return roomInfo, nil
}

// requireOwner verifies the caller holds an owner membership in the room.
func requireOwner(tx *repository.Repositories, roomId uint, callerUuid string) (*model.RoomMember, error) {
	member, err := tx.RoomMember.FindByRoomAndUser(roomId, callerUuid)
	if err != nil {
		if errorx.IsCode(err, errorx.CodeNotFound) {
			return nil, errorx.New(errorx.CodeForbidden, "You are not a member of this room")
		}
		return nil, err
	}
	if !member.Owner {
		return nil, errorx.New(errorx.CodeForbidden, "Only room owners can do this")
	}
	return member, nil
}

// checkCapacities verifies both sides of a prospective membership. The
// user row is locked first so concurrent admissions of the same user
// cannot both pass the per-user count.
func checkCapacities(tx *repository.Repositories, roomId uint, userUuid string) error {
	if err := tx.User.LockByUuid(userUuid); err != nil {
		return err
	}
	userRooms, err := tx.RoomMember.CountByUserUuid(userUuid)
	if err != nil {
		return err
	}
	if userRooms >= constants.MAX_USER_ROOMS {
		return errorx.Newf(errorx.CodeUserRoomLimit,
			"A user can be in at most %d rooms", constants.MAX_USER_ROOMS)
	}
	roomMembers, err := tx.RoomMember.CountByRoomID(roomId)
	if err != nil {
		return err
	}
	if roomMembers >= constants.MAX_ROOM_USERS {
		return errorx.Newf(errorx.CodeRoomFull,
			"A room can have at most %d members", constants.MAX_ROOM_USERS)
	}
	return nil
}

// removeMembership deletes one membership and, when it was the last one,
// the room itself with its pending requests and chores.
// Returns true when the room was deleted.
func removeMembership(tx *repository.Repositories, roomId uint, userUuid string) (bool, error) {
	if err := tx.RoomMember.Delete(roomId, userUuid); err != nil {
		return false, err
	}
	remaining, err := tx.RoomMember.CountByRoomID(roomId)
	if err != nil {
		return false, err
	}
	if remaining > 0 {
		return false, nil
	}
	if err := tx.JoinRequest.DeleteByRoomID(roomId); err != nil {
		return false, err
	}
	if err := tx.Chore.DeleteByRoomID(roomId); err != nil {
		return false, err
	}
	if err := tx.Room.Delete(roomId); err != nil {
		return false, err
	}
	return true, nil
}

// memberUuids returns all member uuids of a room, minus the excluded one.
func memberUuids(members []model.RoomMember, exclude string) []string {
	uuids := make([]string, 0, len(members))
	for _, m := range members {
		if m.UserUuid != exclude {
			uuids = append(uuids, m.UserUuid)
		}
	}
	return uuids
}

// ownerUuids returns the owner uuids of a room, minus the excluded one.
func ownerUuids(members []model.RoomMember, exclude string) []string {
	uuids := make([]string, 0, len(members))
	for _, m := range members {
		if m.Owner && m.UserUuid != exclude {
			uuids = append(uuids, m.UserUuid)
		}
	}
	return uuids
}

// publish hands an event to the broker after the transaction committed.
func (s *roomService) publish(event *mq.Event) {
	if len(event.Recipients) == 0 {
		return
	}
	event.OccurredAt = time.Now()
	if err := s.broker.Publish(event); err != nil {
		zap.L().Error("publish event", zap.String("type", string(event.Type)), zap.Error(err))
	}
}

// ==================== room lifecycle ====================

func (s *roomService) CreateRoom(callerUuid string, req request.CreateRoomRequest) (*respond.RoomListItem, error) {
	name := model.NormalizeRoomName(req.Name)
	if name == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "The room name must not be empty")
	}

	var created model.Room
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.User.LockByUuid(callerUuid); err != nil {
			return err
		}
		userRooms, err := tx.RoomMember.CountByUserUuid(callerUuid)
		if err != nil {
			return err
		}
		if userRooms >= constants.MAX_USER_ROOMS {
			return errorx.Newf(errorx.CodeUserRoomLimit,
				"A user can be in at most %d rooms", constants.MAX_USER_ROOMS)
		}

		_, err = tx.Room.FindByNormalizedName(name)
		if err == nil {
			return errorx.New(errorx.CodeDuplicateName, "A room with this name already exists")
		}
		if !errorx.IsCode(err, errorx.CodeNotFound) {
			return err
		}

		created = model.Room{
			Name:               req.Name,
			NormalizedName:     name,
			AllowMembersToPost: req.AllowMembersToPost,
		}
		if err := tx.Room.Create(&created); err != nil {
			return err
		}
		// the creator is the first and only owner
		return tx.RoomMember.Create(&model.RoomMember{
			RoomID:   created.ID,
			UserUuid: callerUuid,
			Owner:    true,
		})
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("room created",
		zap.Uint("room_id", created.ID), zap.String("owner", callerUuid))
	return &respond.RoomListItem{
		RoomId:             created.ID,
		Name:               created.Name,
		Owner:              true,
		AllowMembersToPost: created.AllowMembersToPost,
		UndoneChores:       0,
		HighestUrgency:     -1,
	}, nil
}

func (s *roomService) UpdateRoom(callerUuid string, req request.UpdateRoomRequest) error {
	name := model.NormalizeRoomName(req.Name)
	if name == "" {
		return errorx.New(errorx.CodeInvalidParam, "The room name must not be empty")
	}

	return s.repos.Transaction(func(tx *repository.Repositories) error {
		roomInfo, err := lockRoom(tx, req.RoomId)
		if err != nil {
			return err
		}
		if _, err := requireOwner(tx, req.RoomId, callerUuid); err != nil {
			return err
		}
		if name != roomInfo.NormalizedName {
			other, err := tx.Room.FindByNormalizedName(name)
			if err == nil && other.ID != roomInfo.ID {
				return errorx.New(errorx.CodeDuplicateName, "A room with this name already exists")
			}
			if err != nil && !errorx.IsCode(err, errorx.CodeNotFound) {
				return err
			}
		}
		roomInfo.Name = req.Name
		roomInfo.NormalizedName = name
		roomInfo.AllowMembersToPost = req.AllowMembersToPost
		return tx.Room.Update(roomInfo)
	})
}

// ==================== requests and invitations ====================

func (s *roomService) JoinRoom(callerUuid string, req request.JoinRoomRequest) error {
	var owners []string
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		if _, err := lockRoom(tx, req.RoomId); err != nil {
			return err
		}

		_, err := tx.RoomMember.FindByRoomAndUser(req.RoomId, callerUuid)
		if err == nil {
			return errorx.New(errorx.CodeAlreadyMember, "You are already a member of this room")
		}
		if !errorx.IsCode(err, errorx.CodeNotFound) {
			return err
		}

		_, err = tx.JoinRequest.FindByRoomUserAndType(req.RoomId, callerUuid, model.JoinRequestTypeJoin)
		if err == nil {
			return errorx.New(errorx.CodeDuplicateRequest, "You have already requested to join this room")
		}
		if !errorx.IsCode(err, errorx.CodeNotFound) {
			return err
		}

		// a pending invitation is answered, not doubled with a request
		_, err = tx.JoinRequest.FindByRoomUserAndType(req.RoomId, callerUuid, model.JoinRequestTypeInvite)
		if err == nil {
			return errorx.New(errorx.CodeDuplicateRequest,
				"You already have an invitation to this room; accept or decline it instead")
		}
		if !errorx.IsCode(err, errorx.CodeNotFound) {
			return err
		}

		// capacities are checked again at acceptance; failing early here
		// spares the owner a request that could never be accepted
		if err := checkCapacities(tx, req.RoomId, callerUuid); err != nil {
			return err
		}

		if err := tx.JoinRequest.Create(&model.JoinRequest{
			RoomID:   req.RoomId,
			UserUuid: callerUuid,
			Type:     model.JoinRequestTypeJoin,
		}); err != nil {
			return err
		}

		members, err := tx.RoomMember.FindByRoomID(req.RoomId)
		if err != nil {
			return err
		}
		owners = ownerUuids(members, callerUuid)
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(&mq.Event{
		Type:       mq.EventJoinRequestReceived,
		RoomId:     req.RoomId,
		ActorUuid:  callerUuid,
		Recipients: owners,
	})
	return nil
}

func (s *roomService) InviteUser(callerUuid string, req request.InviteUserRequest) error {
	if req.UserUuid == callerUuid {
		return errorx.New(errorx.CodeInvalidParam, "You can't invite yourself")
	}

	var roomName string
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		roomInfo, err := lockRoom(tx, req.RoomId)
		if err != nil {
			return err
		}
		roomName = roomInfo.Name
		if _, err := requireOwner(tx, req.RoomId, callerUuid); err != nil {
			return err
		}

		if _, err := tx.User.FindByUuid(req.UserUuid); err != nil {
			if errorx.IsCode(err, errorx.CodeNotFound) {
				return errorx.New(errorx.CodeUserNotExist, "The user does not exist")
			}
			return err
		}

		_, err = tx.RoomMember.FindByRoomAndUser(req.RoomId, req.UserUuid)
		if err == nil {
			return errorx.New(errorx.CodeAlreadyMember, "The user is already a member of this room")
		}
		if !errorx.IsCode(err, errorx.CodeNotFound) {
			return err
		}

		_, err = tx.JoinRequest.FindByRoomUserAndType(req.RoomId, req.UserUuid, model.JoinRequestTypeInvite)
		if err == nil {
			return errorx.New(errorx.CodeDuplicateRequest, "The user has already been invited to this room")
		}
		if !errorx.IsCode(err, errorx.CodeNotFound) {
			return err
		}

		// the user already asked to join; the owner answers that request
		_, err = tx.JoinRequest.FindByRoomUserAndType(req.RoomId, req.UserUuid, model.JoinRequestTypeJoin)
		if err == nil {
			return errorx.New(errorx.CodeDuplicateRequest,
				"The user has already requested to join; accept their request instead")
		}
		if !errorx.IsCode(err, errorx.CodeNotFound) {
			return err
		}

		if err := checkCapacities(tx, req.RoomId, req.UserUuid); err != nil {
			return err
		}

		return tx.JoinRequest.Create(&model.JoinRequest{
			RoomID:   req.RoomId,
			UserUuid: req.UserUuid,
			Type:     model.JoinRequestTypeInvite,
		})
	})
	if err != nil {
		return err
	}

	s.publish(&mq.Event{
		Type:       mq.EventInviteReceived,
		RoomId:     req.RoomId,
		RoomName:   roomName,
		ActorUuid:  callerUuid,
		TargetUuid: req.UserUuid,
		Recipients: []string{req.UserUuid},
	})
	return nil
}

func (s *roomService) AcceptRequest(callerUuid string, req request.AcceptRequestRequest) error {
	var requesterUuid string
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		if _, err := lockRoom(tx, req.RoomId); err != nil {
			return err
		}
		if _, err := requireOwner(tx, req.RoomId, callerUuid); err != nil {
			return err
		}

		joinReq, err := tx.JoinRequest.FindByID(req.JoinRequestId)
		if err != nil {
			if errorx.IsCode(err, errorx.CodeNotFound) {
				return errorx.New(errorx.CodeNotFound, "The join request does not exist")
			}
			return err
		}
		if joinReq.RoomID != req.RoomId || joinReq.Type != model.JoinRequestTypeJoin {
			return errorx.New(errorx.CodeNotFound, "The join request does not exist")
		}
		requesterUuid = joinReq.UserUuid

		if err := checkCapacities(tx, req.RoomId, requesterUuid); err != nil {
			return err
		}
		if err := tx.RoomMember.Create(&model.RoomMember{
			RoomID:   req.RoomId,
			UserUuid: requesterUuid,
			Owner:    false,
		}); err != nil {
			return err
		}
		return tx.JoinRequest.DeleteByID(joinReq.ID)
	})
	if err != nil {
		return err
	}

	s.publish(&mq.Event{
		Type:       mq.EventRequestAccepted,
		RoomId:     req.RoomId,
		ActorUuid:  callerUuid,
		TargetUuid: requesterUuid,
		Recipients: []string{requesterUuid},
	})
	return nil
}

func (s *roomService) DeclineRequest(callerUuid string, req request.DeclineRequestRequest) error {
	var requesterUuid string
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		if _, err := lockRoom(tx, req.RoomId); err != nil {
			return err
		}
		if _, err := requireOwner(tx, req.RoomId, callerUuid); err != nil {
			return err
		}

		joinReq, err := tx.JoinRequest.FindByID(req.JoinRequestId)
		if err != nil {
			if errorx.IsCode(err, errorx.CodeNotFound) {
				return errorx.New(errorx.CodeNotFound, "The join request does not exist")
			}
			return err
		}
		if joinReq.RoomID != req.RoomId || joinReq.Type != model.JoinRequestTypeJoin {
			return errorx.New(errorx.CodeNotFound, "The join request does not exist")
		}
		requesterUuid = joinReq.UserUuid
		return tx.JoinRequest.DeleteByID(joinReq.ID)
	})
	if err != nil {
		return err
	}

	s.publish(&mq.Event{
		Type:       mq.EventRequestDeclined,
		RoomId:     req.RoomId,
		ActorUuid:  callerUuid,
		TargetUuid: requesterUuid,
		Recipients: []string{requesterUuid},
	})
	return nil
}

func (s *roomService) AcceptInvitation(callerUuid string, req request.AcceptInvitationRequest) error {
	var roomId uint
	var owners []string
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		joinReq, err := tx.JoinRequest.FindByID(req.JoinRequestId)
		if err != nil {
			if errorx.IsCode(err, errorx.CodeNotFound) {
				return errorx.New(errorx.CodeNotFound, "The invitation does not exist")
			}
			return err
		}
		if joinReq.UserUuid != callerUuid || joinReq.Type != model.JoinRequestTypeInvite {
			return errorx.New(errorx.CodeNotFound, "The invitation does not exist")
		}
		roomId = joinReq.RoomID

		if _, err := lockRoom(tx, roomId); err != nil {
			return err
		}
		if err := checkCapacities(tx, roomId, callerUuid); err != nil {
			return err
		}
		if err := tx.RoomMember.Create(&model.RoomMember{
			RoomID:   roomId,
			UserUuid: callerUuid,
			Owner:    false,
		}); err != nil {
			return err
		}
		if err := tx.JoinRequest.DeleteByID(joinReq.ID); err != nil {
			return err
		}

		members, err := tx.RoomMember.FindByRoomID(roomId)
		if err != nil {
			return err
		}
		owners = ownerUuids(members, callerUuid)
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(&mq.Event{
		Type:       mq.EventInvitationAccepted,
		RoomId:     roomId,
		ActorUuid:  callerUuid,
		Recipients: owners,
	})
	return nil
}

func (s *roomService) DeclineInvitation(callerUuid string, req request.DeclineInvitationRequest) error {
	return s.repos.Transaction(func(tx *repository.Repositories) error {
		joinReq, err := tx.JoinRequest.FindByID(req.JoinRequestId)
		if err != nil {
			if errorx.IsCode(err, errorx.CodeNotFound) {
				return errorx.New(errorx.CodeNotFound, "The invitation does not exist")
			}
			return err
		}
		if joinReq.UserUuid != callerUuid || joinReq.Type != model.JoinRequestTypeInvite {
			return errorx.New(errorx.CodeNotFound, "The invitation does not exist")
		}
		if _, err := lockRoom(tx, joinReq.RoomID); err != nil {
			return err
		}
		return tx.JoinRequest.DeleteByID(joinReq.ID)
	})
}

func (s *roomService) CancelRequest(callerUuid string, req request.CancelRequestRequest) error {
	return s.repos.Transaction(func(tx *repository.Repositories) error {
		if _, err := lockRoom(tx, req.RoomId); err != nil {
			return err
		}
		joinReq, err := tx.JoinRequest.FindByRoomUserAndType(req.RoomId, callerUuid, model.JoinRequestTypeJoin)
		if err != nil {
			if errorx.IsCode(err, errorx.CodeNotFound) {
				return errorx.New(errorx.CodeNotFound, "You have no pending request for this room")
			}
			return err
		}
		return tx.JoinRequest.DeleteByID(joinReq.ID)
	})
}

func (s *roomService) CancelInvitation(callerUuid string, req request.CancelInvitationRequest) error {
	return s.repos.Transaction(func(tx *repository.Repositories) error {
		if _, err := lockRoom(tx, req.RoomId); err != nil {
			return err
		}
		if _, err := requireOwner(tx, req.RoomId, callerUuid); err != nil {
			return err
		}
		joinReq, err := tx.JoinRequest.FindByRoomUserAndType(req.RoomId, req.UserUuid, model.JoinRequestTypeInvite)
		if err != nil {
			if errorx.IsCode(err, errorx.CodeNotFound) {
				return errorx.New(errorx.CodeNotFound, "The user has no pending invitation to this room")
			}
			return err
		}
		return tx.JoinRequest.DeleteByID(joinReq.ID)
	})
}

// ==================== leaving, kicking, ownership ====================

func (s *roomService) LeaveRoom(callerUuid string, req request.LeaveRoomRequest) error {
	var remaining []string
	var roomDeleted bool
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		if _, err := lockRoom(tx, req.RoomId); err != nil {
			return err
		}
		member, err := tx.RoomMember.FindByRoomAndUser(req.RoomId, callerUuid)
		if err != nil {
			if errorx.IsCode(err, errorx.CodeNotFound) {
				return errorx.New(errorx.CodeNotFound, "You are not a member of this room")
			}
			return err
		}

		memberCount, err := tx.RoomMember.CountByRoomID(req.RoomId)
		if err != nil {
			return err
		}

		// a sole owner of a populated room hands ownership over first
		if member.Owner && memberCount > 1 {
			ownerCount, err := tx.RoomMember.CountOwnersByRoomID(req.RoomId)
			if err != nil {
				return err
			}
			if ownerCount == 1 {
				if req.AlternativeOwnerUuid == "" {
					return errorx.New(errorx.CodeOwnerRequired,
						"You are the only owner; name another member as owner before leaving")
				}
				if req.AlternativeOwnerUuid == callerUuid {
					return errorx.New(errorx.CodeInvalidParam,
						"The alternative owner must be another member")
				}
				alt, err := tx.RoomMember.FindByRoomAndUser(req.RoomId, req.AlternativeOwnerUuid)
				if err != nil {
					if errorx.IsCode(err, errorx.CodeNotFound) {
						return errorx.New(errorx.CodeNotFound, "The user is not a member of this room")
					}
					return err
				}
				if !alt.Owner {
					if err := tx.RoomMember.UpdateOwner(req.RoomId, alt.UserUuid, true); err != nil {
						return err
					}
				}
			}
		}

		roomDeleted, err = removeMembership(tx, req.RoomId, callerUuid)
		if err != nil {
			return err
		}
		if !roomDeleted {
			members, err := tx.RoomMember.FindByRoomID(req.RoomId)
			if err != nil {
				return err
			}
			remaining = memberUuids(members, callerUuid)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if roomDeleted {
		zap.L().Info("room deleted, last member left",
			zap.Uint("room_id", req.RoomId), zap.String("user", callerUuid))
		return nil
	}
	s.publish(&mq.Event{
		Type:       mq.EventMemberLeft,
		RoomId:     req.RoomId,
		ActorUuid:  callerUuid,
		Recipients: remaining,
	})
	return nil
}

func (s *roomService) KickUser(callerUuid string, req request.KickUserRequest) error {
	if req.UserUuid == callerUuid {
		return errorx.New(errorx.CodeInvalidParam, "You can't kick yourself")
	}

	var recipients []string
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		if _, err := lockRoom(tx, req.RoomId); err != nil {
			return err
		}
		if _, err := requireOwner(tx, req.RoomId, callerUuid); err != nil {
			return err
		}

		target, err := tx.RoomMember.FindByRoomAndUser(req.RoomId, req.UserUuid)
		if err != nil {
			if errorx.IsCode(err, errorx.CodeNotFound) {
				return errorx.New(errorx.CodeNotFound, "The user is not a member of this room")
			}
			return err
		}

		// removal may never leave an ownerless room behind
		if target.Owner {
			ownerCount, err := tx.RoomMember.CountOwnersByRoomID(req.RoomId)
			if err != nil {
				return err
			}
			if ownerCount == 1 {
				return errorx.New(errorx.CodeLastOwner, "A room must have at least one owner")
			}
		}

		if _, err := removeMembership(tx, req.RoomId, req.UserUuid); err != nil {
			return err
		}
		members, err := tx.RoomMember.FindByRoomID(req.RoomId)
		if err != nil {
			return err
		}
		recipients = append(memberUuids(members, callerUuid), req.UserUuid)
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(&mq.Event{
		Type:       mq.EventMemberKicked,
		RoomId:     req.RoomId,
		ActorUuid:  callerUuid,
		TargetUuid: req.UserUuid,
		Recipients: recipients,
	})
	return nil
}

func (s *roomService) PromoteMember(callerUuid string, req request.PromoteMemberRequest) error {
	if req.UserUuid == callerUuid {
		return errorx.New(errorx.CodeInvalidParam, "You can't promote yourself")
	}

	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		if _, err := lockRoom(tx, req.RoomId); err != nil {
			return err
		}
		if _, err := requireOwner(tx, req.RoomId, callerUuid); err != nil {
			return err
		}
		target, err := tx.RoomMember.FindByRoomAndUser(req.RoomId, req.UserUuid)
		if err != nil {
			if errorx.IsCode(err, errorx.CodeNotFound) {
				return errorx.New(errorx.CodeNotFound, "The user is not a member of this room")
			}
			return err
		}
		if target.Owner {
			return errorx.New(errorx.CodeInvalidParam, "The user is already an owner")
		}
		return tx.RoomMember.UpdateOwner(req.RoomId, req.UserUuid, true)
	})
	if err != nil {
		return err
	}

	s.publish(&mq.Event{
		Type:       mq.EventMemberPromoted,
		RoomId:     req.RoomId,
		ActorUuid:  callerUuid,
		TargetUuid: req.UserUuid,
		Recipients: []string{req.UserUuid},
	})
	return nil
}

func (s *roomService) DemoteOwner(callerUuid string, req request.DemoteOwnerRequest) error {
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		if _, err := lockRoom(tx, req.RoomId); err != nil {
			return err
		}
		if _, err := requireOwner(tx, req.RoomId, callerUuid); err != nil {
			return err
		}
		target, err := tx.RoomMember.FindByRoomAndUser(req.RoomId, req.UserUuid)
		if err != nil {
			if errorx.IsCode(err, errorx.CodeNotFound) {
				return errorx.New(errorx.CodeNotFound, "The user is not a member of this room")
			}
			return err
		}
		if !target.Owner {
			return errorx.New(errorx.CodeInvalidParam, "The user is not an owner")
		}
		ownerCount, err := tx.RoomMember.CountOwnersByRoomID(req.RoomId)
		if err != nil {
			return err
		}
		// holds for self-demotion too: a co-owner must remain
		if ownerCount == 1 {
			return errorx.New(errorx.CodeLastOwner, "A room must have at least one owner")
		}
		return tx.RoomMember.UpdateOwner(req.RoomId, req.UserUuid, false)
	})
	if err != nil {
		return err
	}

	s.publish(&mq.Event{
		Type:       mq.EventMemberDemoted,
		RoomId:     req.RoomId,
		ActorUuid:  callerUuid,
		TargetUuid: req.UserUuid,
		Recipients: []string{req.UserUuid},
	})
	return nil
}

// ==================== projections ====================

// GetMyRooms builds the caller's overview. Chore summaries are computed
// from the database on every call, never cached, so the counts always
// reflect the latest committed state.
func (s *roomService) GetMyRooms(callerUuid string) ([]respond.RoomListItem, error) {
	memberships, err := s.repos.RoomMember.FindByUserUuid(callerUuid)
	if err != nil {
		zap.L().Error("load memberships", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if len(memberships) == 0 {
		return []respond.RoomListItem{}, nil
	}

	roomIds := make([]uint, 0, len(memberships))
	ownerByRoom := make(map[uint]bool, len(memberships))
	for _, m := range memberships {
		roomIds = append(roomIds, m.RoomID)
		ownerByRoom[m.RoomID] = m.Owner
	}

	rooms, err := s.repos.Room.FindByIDs(roomIds)
	if err != nil {
		zap.L().Error("load rooms", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	chores, err := s.repos.Chore.FindByRoomIDs(roomIds)
	if err != nil {
		zap.L().Error("load chores", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	type summary struct {
		undone  int64
		highest int8
	}
	summaries := make(map[uint]*summary, len(roomIds))
	for _, c := range chores {
		if c.Done {
			continue
		}
		sm, ok := summaries[c.RoomID]
		if !ok {
			sm = &summary{highest: -1}
			summaries[c.RoomID] = sm
		}
		sm.undone++
		if c.Urgency > sm.highest {
			sm.highest = c.Urgency
		}
	}

	items := make([]respond.RoomListItem, 0, len(rooms))
	for _, r := range rooms {
		item := respond.RoomListItem{
			RoomId:             r.ID,
			Name:               r.Name,
			Owner:              ownerByRoom[r.ID],
			AllowMembersToPost: r.AllowMembersToPost,
			HighestUrgency:     -1,
		}
		if sm, ok := summaries[r.ID]; ok {
			item.UndoneChores = sm.undone
			item.HighestUrgency = sm.highest
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *roomService) GetRoomById(callerUuid string, roomId uint) (*respond.RoomDetailRespond, error) {
	member, err := s.repos.RoomMember.FindByRoomAndUser(roomId, callerUuid)
	if err != nil {
		if errorx.IsCode(err, errorx.CodeNotFound) {
			return nil, errorx.New(errorx.CodeForbidden, "You are not a member of this room")
		}
		zap.L().Error("load membership", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	roomInfo, err := s.repos.Room.FindByID(roomId)
	if err != nil {
		if errorx.IsCode(err, errorx.CodeNotFound) {
			return nil, errorx.New(errorx.CodeNotFound, "The room does not exist")
		}
		zap.L().Error("load room", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	memberRows, err := s.repos.RoomMember.FindMembersWithUserInfo(roomId)
	if err != nil {
		zap.L().Error("load members", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	choreRows, err := s.repos.Chore.FindByRoomID(roomId)
	if err != nil {
		zap.L().Error("load chores", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	members := make([]respond.RoomMemberItem, 0, len(memberRows))
	for _, m := range memberRows {
		members = append(members, respond.RoomMemberItem{
			UserUuid:  m.UserUuid,
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Owner:     m.Owner,
		})
	}
	chores := make([]respond.ChoreRespond, 0, len(choreRows))
	for _, c := range choreRows {
		chores = append(chores, choreToRespond(&c))
	}

	return &respond.RoomDetailRespond{
		RoomId:             roomInfo.ID,
		Name:               roomInfo.Name,
		Owner:              member.Owner,
		AllowMembersToPost: roomInfo.AllowMembersToPost,
		Members:            members,
		Chores:             chores,
	}, nil
}

func (s *roomService) SearchRooms(callerUuid string, req request.SearchRoomsRequest) ([]respond.RoomSearchItem, error) {
	fragment := model.NormalizeRoomName(req.Query)
	rooms, err := s.repos.Room.SearchByName(fragment)
	if err != nil {
		zap.L().Error("search rooms", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	memberships, err := s.repos.RoomMember.FindByUserUuid(callerUuid)
	if err != nil {
		zap.L().Error("load memberships", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	pending, err := s.repos.JoinRequest.FindByUserUuid(callerUuid)
	if err != nil {
		zap.L().Error("load join requests", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	memberOf := make(map[uint]bool, len(memberships))
	for _, m := range memberships {
		memberOf[m.RoomID] = true
	}
	requested := make(map[uint]bool)
	invited := make(map[uint]bool)
	for _, p := range pending {
		switch p.Type {
		case model.JoinRequestTypeJoin:
			requested[p.RoomID] = true
		case model.JoinRequestTypeInvite:
			invited[p.RoomID] = true
		}
	}

	items := make([]respond.RoomSearchItem, 0, len(rooms))
	for _, r := range rooms {
		count, err := s.repos.RoomMember.CountByRoomID(r.ID)
		if err != nil {
			zap.L().Error("count members", zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
		status := "none"
		switch {
		case memberOf[r.ID]:
			status = "member"
		case requested[r.ID]:
			status = "requested"
		case invited[r.ID]:
			status = "invited"
		}
		items = append(items, respond.RoomSearchItem{
			RoomId:     r.ID,
			Name:       r.Name,
			Members:    count,
			MaxMembers: constants.MAX_ROOM_USERS,
			Status:     status,
		})
	}
	return items, nil
}

func (s *roomService) FindMember(callerUuid string, req request.FindMemberRequest) ([]respond.MemberSearchItem, error) {
	var items []respond.MemberSearchItem
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		if _, err := tx.Room.FindByID(req.RoomId); err != nil {
			if errorx.IsCode(err, errorx.CodeNotFound) {
				return errorx.New(errorx.CodeNotFound, "The room does not exist")
			}
			return err
		}
		if _, err := requireOwner(tx, req.RoomId, callerUuid); err != nil {
			return err
		}

		users, err := tx.User.SearchByUserName(req.Query)
		if err != nil {
			return err
		}
		members, err := tx.RoomMember.FindByRoomID(req.RoomId)
		if err != nil {
			return err
		}
		memberOf := make(map[string]bool, len(members))
		for _, m := range members {
			memberOf[m.UserUuid] = true
		}

		items = make([]respond.MemberSearchItem, 0, len(users))
		for _, u := range users {
			if memberOf[u.Uuid] {
				continue
			}
			// users with a pending request or invitation stay listed in
			// their own tabs, not in invite search
			if _, err := tx.JoinRequest.FindByRoomUserAndType(req.RoomId, u.Uuid, model.JoinRequestTypeJoin); err == nil {
				continue
			} else if !errorx.IsCode(err, errorx.CodeNotFound) {
				return err
			}
			if _, err := tx.JoinRequest.FindByRoomUserAndType(req.RoomId, u.Uuid, model.JoinRequestTypeInvite); err == nil {
				continue
			} else if !errorx.IsCode(err, errorx.CodeNotFound) {
				return err
			}
			items = append(items, respond.MemberSearchItem{
				UserUuid:  u.Uuid,
				UserName:  u.UserName,
				FirstName: u.FirstName,
				LastName:  u.LastName,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *roomService) GetJoinRequests(callerUuid string, roomId uint) ([]respond.JoinRequestItem, error) {
	var items []respond.JoinRequestItem
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		if _, err := tx.Room.FindByID(roomId); err != nil {
			if errorx.IsCode(err, errorx.CodeNotFound) {
				return errorx.New(errorx.CodeNotFound, "The room does not exist")
			}
			return err
		}
		if _, err := requireOwner(tx, roomId, callerUuid); err != nil {
			return err
		}
		rows, err := tx.JoinRequest.FindRequestsWithUserInfo(roomId)
		if err != nil {
			return err
		}
		items = make([]respond.JoinRequestItem, 0, len(rows))
		for _, row := range rows {
			items = append(items, respond.JoinRequestItem{
				JoinRequestId: row.JoinRequestID,
				UserUuid:      row.UserUuid,
				FirstName:     row.FirstName,
				LastName:      row.LastName,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *roomService) GetMyInvitations(callerUuid string) ([]respond.InvitationItem, error) {
	rows, err := s.repos.JoinRequest.FindInvitationsWithRoom(callerUuid)
	if err != nil {
		zap.L().Error("load invitations", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	items := make([]respond.InvitationItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, respond.InvitationItem{
			JoinRequestId: row.JoinRequestID,
			RoomId:        row.RoomID,
			RoomName:      row.RoomName,
		})
	}
	return items, nil
}

// choreToRespond converts a chore row to its response form.
func choreToRespond(c *model.Chore) respond.ChoreRespond {
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
