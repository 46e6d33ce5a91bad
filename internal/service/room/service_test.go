package room

import (
	"sort"
	"strings"
	"testing"

	"your_chores_server/internal/dao/mysql/repository"
	"your_chores_server/internal/dto/request"
	"your_chores_server/internal/infrastructure/mq"
	"your_chores_server/internal/model"
	"your_chores_server/pkg/constants"
	"your_chores_server/pkg/errorx"
)

// ==================== in-memory fakes ====================

func errNotFound() error {
	return errorx.New(errorx.CodeNotFound, "record not found")
}

type fakeStore struct {
	users       map[string]*model.UserInfo
	rooms       map[uint]*model.Room
	members     []*model.RoomMember
	requests    map[uint]*model.JoinRequest
	chores      map[uint]*model.Chore
	nextRoomID  uint
	nextReqID   uint
	nextChoreID uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]*model.UserInfo),
		rooms:    make(map[uint]*model.Room),
		requests: make(map[uint]*model.JoinRequest),
		chores:   make(map[uint]*model.Chore),
	}
}

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) FindByUuid(uuid string) (*model.UserInfo, error) {
	if u, ok := r.s.users[uuid]; ok {
		return u, nil
	}
	return nil, errNotFound()
}

func (r *fakeUserRepo) FindByUserName(userName string) (*model.UserInfo, error) {
	for _, u := range r.s.users {
		if strings.EqualFold(u.UserName, userName) {
			return u, nil
		}
	}
	return nil, errNotFound()
}

func (r *fakeUserRepo) FindByUuids(uuids []string) ([]model.UserInfo, error) {
	var out []model.UserInfo
	for _, id := range uuids {
		if u, ok := r.s.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) SearchByUserName(fragment string) ([]model.UserInfo, error) {
	var out []model.UserInfo
	for _, u := range r.s.users {
		if strings.Contains(strings.ToLower(u.UserName), strings.ToLower(fragment)) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Create(user *model.UserInfo) error {
	r.s.users[user.Uuid] = user
	return nil
}

func (r *fakeUserRepo) Update(user *model.UserInfo) error {
	r.s.users[user.Uuid] = user
	return nil
}

func (r *fakeUserRepo) LockByUuid(uuid string) error {
	if _, ok := r.s.users[uuid]; !ok {
		return errNotFound()
	}
	return nil
}

type fakeRoomRepo struct{ s *fakeStore }

func (r *fakeRoomRepo) FindByID(id uint) (*model.Room, error) {
	if room, ok := r.s.rooms[id]; ok {
		return room, nil
	}
	return nil, errNotFound()
}

func (r *fakeRoomRepo) LockByID(id uint) (*model.Room, error) {
	return r.FindByID(id)
}

func (r *fakeRoomRepo) FindByNormalizedName(name string) (*model.Room, error) {
	for _, room := range r.s.rooms {
		if room.NormalizedName == name {
			return room, nil
		}
	}
	return nil, errNotFound()
}

func (r *fakeRoomRepo) SearchByName(fragment string) ([]model.Room, error) {
	var out []model.Room
	for _, room := range r.s.rooms {
		if strings.Contains(room.NormalizedName, fragment) {
			out = append(out, *room)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRoomRepo) FindByIDs(ids []uint) ([]model.Room, error) {
	var out []model.Room
	for _, id := range ids {
		if room, ok := r.s.rooms[id]; ok {
			out = append(out, *room)
		}
	}
	return out, nil
}

func (r *fakeRoomRepo) Create(room *model.Room) error {
	r.s.nextRoomID++
	room.ID = r.s.nextRoomID
	r.s.rooms[room.ID] = room
	return nil
}

func (r *fakeRoomRepo) Update(room *model.Room) error {
	r.s.rooms[room.ID] = room
	return nil
}

func (r *fakeRoomRepo) Delete(id uint) error {
	delete(r.s.rooms, id)
	return nil
}

type fakeMemberRepo struct{ s *fakeStore }

func (r *fakeMemberRepo) FindByRoomAndUser(roomID uint, userUuid string) (*model.RoomMember, error) {
	for _, m := range r.s.members {
		if m.RoomID == roomID && m.UserUuid == userUuid {
			return m, nil
		}
	}
	return nil, errNotFound()
}

func (r *fakeMemberRepo) FindByRoomID(roomID uint) ([]model.RoomMember, error) {
	var out []model.RoomMember
	for _, m := range r.s.members {
		if m.RoomID == roomID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMemberRepo) FindByUserUuid(userUuid string) ([]model.RoomMember, error) {
	var out []model.RoomMember
	for _, m := range r.s.members {
		if m.UserUuid == userUuid {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMemberRepo) FindMembersWithUserInfo(roomID uint) ([]repository.RoomMemberWithUserInfo, error) {
	var out []repository.RoomMemberWithUserInfo
	for _, m := range r.s.members {
		if m.RoomID != roomID {
			continue
		}
		row := repository.RoomMemberWithUserInfo{UserUuid: m.UserUuid, Owner: m.Owner}
		if u, ok := r.s.users[m.UserUuid]; ok {
			row.FirstName = u.FirstName
			row.LastName = u.LastName
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *fakeMemberRepo) CountByRoomID(roomID uint) (int64, error) {
	var n int64
	for _, m := range r.s.members {
		if m.RoomID == roomID {
			n++
		}
	}
	return n, nil
}

func (r *fakeMemberRepo) CountByUserUuid(userUuid string) (int64, error) {
	var n int64
	for _, m := range r.s.members {
		if m.UserUuid == userUuid {
			n++
		}
	}
	return n, nil
}

func (r *fakeMemberRepo) CountOwnersByRoomID(roomID uint) (int64, error) {
	var n int64
	for _, m := range r.s.members {
		if m.RoomID == roomID && m.Owner {
			n++
		}
	}
	return n, nil
}

func (r *fakeMemberRepo) Create(member *model.RoomMember) error {
	r.s.members = append(r.s.members, member)
	return nil
}

func (r *fakeMemberRepo) UpdateOwner(roomID uint, userUuid string, owner bool) error {
	for _, m := range r.s.members {
		if m.RoomID == roomID && m.UserUuid == userUuid {
			m.Owner = owner
			return nil
		}
	}
	return errNotFound()
}

func (r *fakeMemberRepo) Delete(roomID uint, userUuid string) error {
	for i, m := range r.s.members {
		if m.RoomID == roomID && m.UserUuid == userUuid {
			r.s.members = append(r.s.members[:i], r.s.members[i+1:]...)
			return nil
		}
	}
	return errNotFound()
}

func (r *fakeMemberRepo) DeleteByRoomID(roomID uint) error {
	kept := r.s.members[:0]
	for _, m := range r.s.members {
		if m.RoomID != roomID {
			kept = append(kept, m)
		}
	}
	r.s.members = kept
	return nil
}

type fakeRequestRepo struct{ s *fakeStore }

func (r *fakeRequestRepo) FindByID(id uint) (*model.JoinRequest, error) {
	if req, ok := r.s.requests[id]; ok {
		return req, nil
	}
	return nil, errNotFound()
}

func (r *fakeRequestRepo) FindByRoomUserAndType(roomID uint, userUuid string, reqType int8) (*model.JoinRequest, error) {
	for _, req := range r.s.requests {
		if req.RoomID == roomID && req.UserUuid == userUuid && req.Type == reqType {
			return req, nil
		}
	}
	return nil, errNotFound()
}

func (r *fakeRequestRepo) FindByUserUuid(userUuid string) ([]model.JoinRequest, error) {
	var out []model.JoinRequest
	for _, req := range r.s.requests {
		if req.UserUuid == userUuid {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) FindRequestsWithUserInfo(roomID uint) ([]repository.JoinRequestWithUserInfo, error) {
	var out []repository.JoinRequestWithUserInfo
	for _, req := range r.s.requests {
		if req.RoomID != roomID || req.Type != model.JoinRequestTypeJoin {
			continue
		}
		row := repository.JoinRequestWithUserInfo{JoinRequestID: req.ID, UserUuid: req.UserUuid}
		if u, ok := r.s.users[req.UserUuid]; ok {
			row.FirstName = u.FirstName
			row.LastName = u.LastName
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *fakeRequestRepo) FindInvitationsWithRoom(userUuid string) ([]repository.JoinRequestWithRoom, error) {
	var out []repository.JoinRequestWithRoom
	for _, req := range r.s.requests {
		if req.UserUuid != userUuid || req.Type != model.JoinRequestTypeInvite {
			continue
		}
		row := repository.JoinRequestWithRoom{JoinRequestID: req.ID, RoomID: req.RoomID}
		if room, ok := r.s.rooms[req.RoomID]; ok {
			row.RoomName = room.Name
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *fakeRequestRepo) Create(req *model.JoinRequest) error {
	r.s.nextReqID++
	req.ID = r.s.nextReqID
	r.s.requests[req.ID] = req
	return nil
}

func (r *fakeRequestRepo) DeleteByID(id uint) error {
	delete(r.s.requests, id)
	return nil
}

func (r *fakeRequestRepo) DeleteByRoomID(roomID uint) error {
	for id, req := range r.s.requests {
		if req.RoomID == roomID {
			delete(r.s.requests, id)
		}
	}
	return nil
}

type fakeChoreRepo struct{ s *fakeStore }

func (r *fakeChoreRepo) FindByRoomAndID(roomID uint, choreID uint) (*model.Chore, error) {
	if c, ok := r.s.chores[choreID]; ok && c.RoomID == roomID {
		return c, nil
	}
	return nil, errNotFound()
}

func (r *fakeChoreRepo) FindByRoomID(roomID uint) ([]model.Chore, error) {
	var out []model.Chore
	for _, c := range r.s.chores {
		if c.RoomID == roomID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeChoreRepo) FindByRoomIDs(roomIDs []uint) ([]model.Chore, error) {
	want := make(map[uint]bool, len(roomIDs))
	for _, id := range roomIDs {
		want[id] = true
	}
	var out []model.Chore
	for _, c := range r.s.chores {
		if want[c.RoomID] {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeChoreRepo) Create(chore *model.Chore) error {
	r.s.nextChoreID++
	chore.ID = r.s.nextChoreID
	r.s.chores[chore.ID] = chore
	return nil
}

func (r *fakeChoreRepo) Update(chore *model.Chore) error {
	r.s.chores[chore.ID] = chore
	return nil
}

func (r *fakeChoreRepo) DeleteByRoomID(roomID uint) error {
	for id, c := range r.s.chores {
		if c.RoomID == roomID {
			delete(r.s.chores, id)
		}
	}
	return nil
}

// fakeBroker records published events.
type fakeBroker struct {
	published []*mq.Event
}

func (b *fakeBroker) Publish(event *mq.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *fakeBroker) Events() <-chan *mq.Event { return nil }
func (b *fakeBroker) Close() error             { return nil }

// ==================== fixtures ====================

func newFixture() (*roomService, *fakeStore, *fakeBroker) {
	store := newFakeStore()
	repos := &repository.Repositories{
		User:        &fakeUserRepo{s: store},
		Room:        &fakeRoomRepo{s: store},
		RoomMember:  &fakeMemberRepo{s: store},
		JoinRequest: &fakeRequestRepo{s: store},
		Chore:       &fakeChoreRepo{s: store},
	}
	broker := &fakeBroker{}
	return NewRoomService(repos, broker), store, broker
}

func addUser(s *fakeStore, uuid, name string) {
	s.users[uuid] = &model.UserInfo{
		Uuid:      uuid,
		UserName:  name,
		FirstName: name,
		LastName:  "Tester",
	}
}

func mustCreateRoom(t *testing.T, svc *roomService, owner, name string) uint {
	t.Helper()
	room, err := svc.CreateRoom(owner, request.CreateRoomRequest{Name: name})
	if err != nil {
		t.Fatalf("CreateRoom(%s): %v", name, err)
	}
	return room.RoomId
}

// ==================== room lifecycle ====================

func TestCreateRoomMakesCallerSoleOwner(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")

	roomId := mustCreateRoom(t, svc, "U1", "Kitchen Crew")

	members, _ := svc.repos.RoomMember.FindByRoomID(roomId)
	if len(members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(members))
	}
	if !members[0].Owner || members[0].UserUuid != "U1" {
		t.Errorf("creator should be the owner, got %+v", members[0])
	}
}

func TestCreateRoomRejectsDuplicateNameCaseInsensitive(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	addUser(store, "U2", "bob")
	mustCreateRoom(t, svc, "U1", "Kitchen Crew")

	_, err := svc.CreateRoom("U2", request.CreateRoomRequest{Name: "kitchen crew"})
	if !errorx.IsCode(err, errorx.CodeDuplicateName) {
		t.Errorf("expected CodeDuplicateName, got %v", err)
	}
}

func TestCreateRoomEnforcesUserRoomLimit(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	for i := 0; i < constants.MAX_USER_ROOMS; i++ {
		mustCreateRoom(t, svc, "U1", "Room "+string(rune('A'+i)))
	}

	_, err := svc.CreateRoom("U1", request.CreateRoomRequest{Name: "One Too Many"})
	if !errorx.IsCode(err, errorx.CodeUserRoomLimit) {
		t.Errorf("expected CodeUserRoomLimit, got %v", err)
	}
}

func TestUpdateRoomOwnerOnly(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	addUser(store, "U2", "bob")
	roomId := mustCreateRoom(t, svc, "U1", "Kitchen")
	joinAndAccept(t, svc, roomId, "U2", "U1")

	err := svc.UpdateRoom("U2", request.UpdateRoomRequest{RoomId: roomId, Name: "Renamed"})
	if !errorx.IsCode(err, errorx.CodeForbidden) {
		t.Errorf("expected CodeForbidden for non-owner, got %v", err)
	}

	if err := svc.UpdateRoom("U1", request.UpdateRoomRequest{RoomId: roomId, Name: "Renamed"}); err != nil {
		t.Fatalf("owner update: %v", err)
	}
	room, _ := svc.repos.Room.FindByID(roomId)
	if room.Name != "Renamed" {
		t.Errorf("name not updated, got %q", room.Name)
	}
}

// ==================== join and invite ====================

// joinAndAccept drives the full join flow: user requests, owner accepts.
func joinAndAccept(t *testing.T, svc *roomService, roomId uint, userUuid, ownerUuid string) {
	t.Helper()
	if err := svc.JoinRoom(userUuid, request.JoinRoomRequest{RoomId: roomId}); err != nil {
		t.Fatalf("JoinRoom: %v", err)
	}
	requests, err := svc.GetJoinRequests(ownerUuid, roomId)
	if err != nil {
		t.Fatalf("GetJoinRequests: %v", err)
	}
	for _, jr := range requests {
		if jr.UserUuid == userUuid {
			if err := svc.AcceptRequest(ownerUuid, request.AcceptRequestRequest{
				RoomId: roomId, JoinRequestId: jr.JoinRequestId,
			}); err != nil {
				t.Fatalf("AcceptRequest: %v", err)
			}
			return
		}
	}
	t.Fatalf("no join request found for %s", userUuid)
}

func TestJoinAcceptFlow(t *testing.T) {
	svc, store, broker := newFixture()
	addUser(store, "U1", "alice")
	addUser(store, "U2", "bob")
	roomId := mustCreateRoom(t, svc, "U1", "Kitchen")

	joinAndAccept(t, svc, roomId, "U2", "U1")

	member, err := svc.repos.RoomMember.FindByRoomAndUser(roomId, "U2")
	if err != nil {
		t.Fatalf("U2 should be a member: %v", err)
	}
	if member.Owner {
		t.Error("accepted requester must not be an owner")
	}
	if len(store.requests) != 0 {
		t.Errorf("request should be consumed, %d left", len(store.requests))
	}

	var sawReceived, sawAccepted bool
	for _, e := range broker.published {
		switch e.Type {
		case mq.EventJoinRequestReceived:
			sawReceived = true
		case mq.EventRequestAccepted:
			sawAccepted = true
		}
	}
	if !sawReceived || !sawAccepted {
		t.Errorf("expected join_request_received and request_accepted events, got %+v", broker.published)
	}
}

func TestJoinRoomDuplicateRequestRejected(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	addUser(store, "U2", "bob")
	roomId := mustCreateRoom(t, svc, "U1", "Kitchen")

	if err := svc.JoinRoom("U2", request.JoinRoomRequest{RoomId: roomId}); err != nil {
		t.Fatalf("first join: %v", err)
	}
	err := svc.JoinRoom("U2", request.JoinRoomRequest{RoomId: roomId})
	if !errorx.IsCode(err, errorx.CodeDuplicateRequest) {
		t.Errorf("expected CodeDuplicateRequest, got %v", err)
	}
}

func TestJoinRoomWhileInvitedRejected(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	addUser(store, "U2", "bob")
	roomId := mustCreateRoom(t, svc, "U1", "Kitchen")

	if err := svc.InviteUser("U1", request.InviteUserRequest{RoomId: roomId, UserUuid: "U2"}); err != nil {
		t.Fatalf("InviteUser: %v", err)
	}
	err := svc.JoinRoom("U2", request.JoinRoomRequest{RoomId: roomId})
	if !errorx.IsCode(err, errorx.CodeDuplicateRequest) {
		t.Errorf("join with pending invitation should be refused, got %v", err)
	}
}

func TestInviteWhileRequestedRejected(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	addUser(store, "U2", "bob")
	roomId := mustCreateRoom(t, svc, "U1", "Kitchen")

	if err := svc.JoinRoom("U2", request.JoinRoomRequest{RoomId: roomId}); err != nil {
		t.Fatalf("JoinRoom: %v", err)
	}
	err := svc.InviteUser("U1", request.InviteUserRequest{RoomId: roomId, UserUuid: "U2"})
	if !errorx.IsCode(err, errorx.CodeDuplicateRequest) {
		t.Errorf("invite over pending request should be refused, got %v", err)
	}
}

func TestInviteAcceptFlow(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	addUser(store, "U2", "bob")
	roomId := mustCreateRoom(t, svc, "U1", "Kitchen")

	if err := svc.InviteUser("U1", request.InviteUserRequest{RoomId: roomId, UserUuid: "U2"}); err != nil {
		t.Fatalf("InviteUser: %v", err)
	}
	invitations, err := svc.GetMyInvitations("U2")
	if err != nil || len(invitations) != 1 {
		t.Fatalf("expected one invitation, got %v (%v)", invitations, err)
	}
	if invitations[0].RoomName != "Kitchen" {
		t.Errorf("invitation should carry the room name, got %q", invitations[0].RoomName)
	}
	if err := svc.AcceptInvitation("U2", request.AcceptInvitationRequest{
		JoinRequestId: invitations[0].JoinRequestId,
	}); err != nil {
		t.Fatalf("AcceptInvitation: %v", err)
	}
	if _, err := svc.repos.RoomMember.FindByRoomAndUser(roomId, "U2"); err != nil {
		t.Errorf("U2 should be a member: %v", err)
	}
	if len(store.requests) != 0 {
		t.Errorf("invitation should be consumed, %d left", len(store.requests))
	}
}

func TestAcceptInvitationOfAnotherUserRejected(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	addUser(store, "U2", "bob")
	addUser(store, "U3", "carol")
	roomId := mustCreateRoom(t, svc, "U1", "Kitchen")

	if err := svc.InviteUser("U1", request.InviteUserRequest{RoomId: roomId, UserUuid: "U2"}); err != nil {
		t.Fatalf("InviteUser: %v", err)
	}
	invitations, _ := svc.GetMyInvitations("U2")
	err := svc.AcceptInvitation("U3", request.AcceptInvitationRequest{
		JoinRequestId: invitations[0].JoinRequestId,
	})
	if !errorx.IsCode(err, errorx.CodeNotFound) {
		t.Errorf("accepting someone else's invitation should fail, got %v", err)
	}
}

func TestAcceptRequestTwiceFails(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	addUser(store, "U2", "bob")
	roomId := mustCreateRoom(t, svc, "U1", "Kitchen")

	if err := svc.JoinRoom("U2", request.JoinRoomRequest{RoomId: roomId}); err != nil {
		t.Fatalf("JoinRoom: %v", err)
	}
	requests, _ := svc.GetJoinRequests("U1", roomId)
	req := request.AcceptRequestRequest{RoomId: roomId, JoinRequestId: requests[0].JoinRequestId}
	if err := svc.AcceptRequest("U1", req); err != nil {
		t.Fatalf("first accept: %v", err)
	}
	err := svc.AcceptRequest("U1", req)
	if !errorx.IsCode(err, errorx.CodeNotFound) {
		t.Errorf("second accept should fail with CodeNotFound, got %v", err)
	}
}

func TestAcceptRequestRoomFull(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	addUser(store, "NEW", "newcomer")
	roomId := mustCreateRoom(t, svc, "U1", "Kitchen")

	if err := svc.JoinRoom("NEW", request.JoinRoomRequest{RoomId: roomId}); err != nil {
		t.Fatalf("JoinRoom: %v", err)
	}

	// the room fills up while the request is pending
	for i := 1; int64(i) < constants.MAX_ROOM_USERS; i++ {
		uuid := "F" + string(rune('0'+i/10)) + string(rune('0'+i%10))
		addUser(store, uuid, "filler"+uuid)
		store.members = append(store.members, &model.RoomMember{RoomID: roomId, UserUuid: uuid})
	}

	requests, _ := svc.GetJoinRequests("U1", roomId)
	err := svc.AcceptRequest("U1", request.AcceptRequestRequest{
		RoomId: roomId, JoinRequestId: requests[0].JoinRequestId,
	})
	if !errorx.IsCode(err, errorx.CodeRoomFull) {
		t.Errorf("expected CodeRoomFull, got %v", err)
	}
	// the request survives the failed acceptance
	if len(store.requests) != 1 {
		t.Errorf("request should remain pending, %d left", len(store.requests))
	}
}

func TestJoinRoomFullRoomRejectedAtFiling(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	addUser(store, "NEW", "newcomer")
	roomId := mustCreateRoom(t, svc, "U1", "Kitchen")

	for i := 1; int64(i) < constants.MAX_ROOM_USERS; i++ {
		uuid := "G" + string(rune('0'+i/10)) + string(rune('0'+i%10))
		addUser(store, uuid, "filler"+uuid)
		store.members = append(store.members, &model.RoomMember{RoomID: roomId, UserUuid: uuid})
	}

	err := svc.JoinRoom("NEW", request.JoinRoomRequest{RoomId: roomId})
	if !errorx.IsCode(err, errorx.CodeRoomFull) {
		t.Errorf("expected CodeRoomFull, got %v", err)
	}
	if len(store.requests) != 0 {
		t.Errorf("no request should be filed against a full room, %d found", len(store.requests))
	}
}

func TestCancelRequestLeavesNoResidue(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	addUser(store, "U2", "bob")
	roomId := mustCreateRoom(t, svc, "U1", "Kitchen")

	if err := svc.JoinRoom("U2", request.JoinRoomRequest{RoomId: roomId}); err != nil {
		t.Fatalf("JoinRoom: %v", err)
	}
	if err := svc.CancelRequest("U2", request.CancelRequestRequest{RoomId: roomId}); err != nil {
		t.Fatalf("CancelRequest: %v", err)
	}
	if len(store.requests) != 0 {
		t.Errorf("expected no pending requests, got %d", len(store.requests))
	}
	// the same user can request again afterwards
	if err := svc.JoinRoom("U2", request.JoinRoomRequest{RoomId: roomId}); err != nil {
		t.Errorf("re-join after cancel: %v", err)
	}
}

func TestCancelInvitationOwnerOnly(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	addUser(store, "U2", "bob")
	addUser(store, "U3", "carol")
	roomId := mustCreateRoom(t, svc, "U1", "Kitchen")
	joinAndAccept(t, svc, roomId, "U3", "U1")

	if err := svc.InviteUser("U1", request.InviteUserRequest{RoomId: roomId, UserUuid: "U2"}); err != nil {
		t.Fatalf("InviteUser: %v", err)
	}
	err := svc.CancelInvitation("U3", request.CancelInvitationRequest{RoomId: roomId, UserUuid: "U2"})
	if !errorx.IsCode(err, errorx.CodeForbidden) {
		t.Errorf("non-owner cancel should be refused, got %v", err)
	}
	if err := svc.CancelInvitation("U1", request.CancelInvitationRequest{RoomId: roomId, UserUuid: "U2"}); err != nil {
		t.Fatalf("owner cancel: %v", err)
	}
	if len(store.requests) != 0 {
		t.Errorf("invitation should be gone, %d left", len(store.requests))
	}
}

// ==================== leaving and ownership ====================

func TestLeaveRoomLastMemberDeletesRoom(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	addUser(store, "U2", "bob")
	roomId := mustCreateRoom(t, svc, "U1", "Kitchen")

	// residue that must vanish with the room
	if err := svc.JoinRoom("U2", request.JoinRoomRequest{RoomId: roomId}); err != nil {
		t.Fatalf("JoinRoom: %v", err)
	}
	store.chores[99] = &model.Chore{RoomID: roomId, Description: "dishes"}

	if err := svc.LeaveRoom("U1", request.LeaveRoomRequest{RoomId: roomId}); err != nil {
		t.Fatalf("LeaveRoom: %v", err)
	}
	if _, ok := store.rooms[roomId]; ok {
		t.Error("room should be deleted with its last member")
	}
	if len(store.requests) != 0 {
		t.Errorf("join requests should be cascaded, %d left", len(store.requests))
	}
	if len(store.chores) != 0 {
		t.Errorf("chores should be cascaded, %d left", len(store.chores))
	}
}

func TestLeaveRoomNonMemberNotFound(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	addUser(store, "U2", "bob")
	roomId := mustCreateRoom(t, svc, "U1", "Kitchen")

	err := svc.LeaveRoom("U2", request.LeaveRoomRequest{RoomId: roomId})
	if !errorx.IsCode(err, errorx.CodeNotFound) {
		t.Errorf("expected CodeNotFound, got %v", err)
	}
}

func TestLeaveRoomSoleOwnerNeedsAlternative(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	addUser(store, "U2", "bob")
	roomId := mustCreateRoom(t, svc, "U1", "Kitchen")
	joinAndAccept(t, svc, roomId, "U2", "U1")

	err := svc.LeaveRoom("U1", request.LeaveRoomRequest{RoomId: roomId})
	if !errorx.IsCode(err, errorx.CodeOwnerRequired) {
		t.Fatalf("expected CodeOwnerRequired, got %v", err)
	}

	if err := svc.LeaveRoom("U1", request.LeaveRoomRequest{
		RoomId: roomId, AlternativeOwnerUuid: "U2",
	}); err != nil {
		t.Fatalf("leave with alternative: %v", err)
	}
	member, err := svc.repos.RoomMember.FindByRoomAndUser(roomId, "U2")
	if err != nil || !member.Owner {
		t.Errorf("alternative should be the owner now, got %+v (%v)", member, err)
	}
	owners, _ := svc.repos.RoomMember.CountOwnersByRoomID(roomId)
	if owners != 1 {
		t.Errorf("room should have exactly one owner, got %d", owners)
	}
}

func TestLeaveRoomAlternativeMustBeMember(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	addUser(store, "U2", "bob")
	addUser(store, "U3", "carol")
	roomId := mustCreateRoom(t, svc, "U1", "Kitchen")
	joinAndAccept(t, svc, roomId, "U2", "U1")

	err := svc.LeaveRoom("U1", request.LeaveRoomRequest{
		RoomId: roomId, AlternativeOwnerUuid: "U3",
	})
	if !errorx.IsCode(err, errorx.CodeNotFound) {
		t.Errorf("non-member alternative should be refused, got %v", err)
	}
	// nothing changed
	if _, err := svc.repos.RoomMember.FindByRoomAndUser(roomId, "U1"); err != nil {
		t.Errorf("U1 should still be a member: %v", err)
	}
}

func TestLeaveRoomCoOwnerLeavesFreely(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	addUser(store, "U2", "bob")
	roomId := mustCreateRoom(t, svc, "U1", "Kitchen")
	joinAndAccept(t, svc, roomId, "U2", "U1")
	if err := svc.PromoteMember("U1", request.PromoteMemberRequest{RoomId: roomId, UserUuid: "U2"}); err != nil {
		t.Fatalf("PromoteMember: %v", err)
	}

	if err := svc.LeaveRoom("U1", request.LeaveRoomRequest{RoomId: roomId}); err != nil {
		t.Fatalf("co-owner leave: %v", err)
	}
	owners, _ := svc.repos.RoomMember.CountOwnersByRoomID(roomId)
	if owners != 1 {
		t.Errorf("one owner should remain, got %d", owners)
	}
}

func TestKickUserRules(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	addUser(store, "U2", "bob")
	addUser(store, "U3", "carol")
	roomId := mustCreateRoom(t, svc, "U1", "Kitchen")
	joinAndAccept(t, svc, roomId, "U2", "U1")

	err := svc.KickUser("U1", request.KickUserRequest{RoomId: roomId, UserUuid: "U1"})
	if !errorx.IsCode(err, errorx.CodeInvalidParam) {
		t.Errorf("self-kick should be refused, got %v", err)
	}
	err = svc.KickUser("U1", request.KickUserRequest{RoomId: roomId, UserUuid: "U3"})
	if !errorx.IsCode(err, errorx.CodeNotFound) {
		t.Errorf("kicking a non-member should be refused, got %v", err)
	}
	err = svc.KickUser("U2", request.KickUserRequest{RoomId: roomId, UserUuid: "U1"})
	if !errorx.IsCode(err, errorx.CodeForbidden) {
		t.Errorf("non-owner kick should be refused, got %v", err)
	}

	if err := svc.KickUser("U1", request.KickUserRequest{RoomId: roomId, UserUuid: "U2"}); err != nil {
		t.Fatalf("owner kick: %v", err)
	}
	if _, err := svc.repos.RoomMember.FindByRoomAndUser(roomId, "U2"); !errorx.IsCode(err, errorx.CodeNotFound) {
		t.Errorf("U2 should be gone, got %v", err)
	}
}

func TestDemoteLastOwnerRefused(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	addUser(store, "U2", "bob")
	roomId := mustCreateRoom(t, svc, "U1", "Kitchen")
	joinAndAccept(t, svc, roomId, "U2", "U1")

	err := svc.DemoteOwner("U1", request.DemoteOwnerRequest{RoomId: roomId, UserUuid: "U1"})
	if !errorx.IsCode(err, errorx.CodeLastOwner) {
		t.Errorf("demoting the only owner should be refused, got %v", err)
	}
}

func TestDemoteSelfWithCoOwnerAllowed(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	addUser(store, "U2", "bob")
	roomId := mustCreateRoom(t, svc, "U1", "Kitchen")
	joinAndAccept(t, svc, roomId, "U2", "U1")
	if err := svc.PromoteMember("U1", request.PromoteMemberRequest{RoomId: roomId, UserUuid: "U2"}); err != nil {
		t.Fatalf("PromoteMember: %v", err)
	}

	if err := svc.DemoteOwner("U1", request.DemoteOwnerRequest{RoomId: roomId, UserUuid: "U1"}); err != nil {
		t.Fatalf("self-demotion with a co-owner should work: %v", err)
	}
	member, _ := svc.repos.RoomMember.FindByRoomAndUser(roomId, "U1")
	if member.Owner {
		t.Error("U1 should no longer be an owner")
	}
	owners, _ := svc.repos.RoomMember.CountOwnersByRoomID(roomId)
	if owners != 1 {
		t.Errorf("exactly one owner should remain, got %d", owners)
	}
}

func TestPromoteNonMemberRefused(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	addUser(store, "U2", "bob")
	roomId := mustCreateRoom(t, svc, "U1", "Kitchen")

	err := svc.PromoteMember("U1", request.PromoteMemberRequest{RoomId: roomId, UserUuid: "U2"})
	if !errorx.IsCode(err, errorx.CodeNotFound) {
		t.Errorf("promoting a non-member should be refused, got %v", err)
	}
}

// ==================== projections ====================

func TestGetMyRoomsUrgencyCountsUndoneOnly(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	roomId := mustCreateRoom(t, svc, "U1", "Kitchen")

	store.chores[1] = &model.Chore{RoomID: roomId, Description: "dishes", Urgency: model.UrgencyLow}
	store.chores[2] = &model.Chore{RoomID: roomId, Description: "trash", Urgency: model.UrgencyHigh, Done: true}
	store.chores[3] = &model.Chore{RoomID: roomId, Description: "vacuum", Urgency: model.UrgencyMedium}

	rooms, err := svc.GetMyRooms("U1")
	if err != nil {
		t.Fatalf("GetMyRooms: %v", err)
	}
	if len(rooms) != 1 {
		t.Fatalf("expected 1 room, got %d", len(rooms))
	}
	if rooms[0].UndoneChores != 2 {
		t.Errorf("expected 2 undone chores, got %d", rooms[0].UndoneChores)
	}
	// the done high-urgency chore must not raise the summary
	if rooms[0].HighestUrgency != model.UrgencyMedium {
		t.Errorf("expected highest urgency %d, got %d", model.UrgencyMedium, rooms[0].HighestUrgency)
	}
}

func TestGetMyRoomsNoOpenChores(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	roomId := mustCreateRoom(t, svc, "U1", "Kitchen")
	store.chores[1] = &model.Chore{RoomID: roomId, Description: "done already", Urgency: model.UrgencyHigh, Done: true}

	rooms, err := svc.GetMyRooms("U1")
	if err != nil {
		t.Fatalf("GetMyRooms: %v", err)
	}
	if rooms[0].UndoneChores != 0 || rooms[0].HighestUrgency != -1 {
		t.Errorf("expected 0 undone and urgency -1, got %d and %d",
			rooms[0].UndoneChores, rooms[0].HighestUrgency)
	}
}

func TestSearchRoomsAnnotatesStatus(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	addUser(store, "U2", "bob")
	mustCreateRoom(t, svc, "U1", "Kitchen Alpha")
	betaId := mustCreateRoom(t, svc, "U1", "Kitchen Beta")
	gammaId := mustCreateRoom(t, svc, "U1", "Kitchen Gamma")

	joinAndAccept(t, svc, betaId, "U2", "U1")
	if err := svc.JoinRoom("U2", request.JoinRoomRequest{RoomId: gammaId}); err != nil {
		t.Fatalf("JoinRoom: %v", err)
	}

	results, err := svc.SearchRooms("U2", request.SearchRoomsRequest{Query: "kitchen"})
	if err != nil {
		t.Fatalf("SearchRooms: %v", err)
	}
	statuses := make(map[string]string)
	for _, r := range results {
		statuses[r.Name] = r.Status
	}
	if statuses["Kitchen Alpha"] != "none" ||
		statuses["Kitchen Beta"] != "member" ||
		statuses["Kitchen Gamma"] != "requested" {
		t.Errorf("unexpected statuses: %v", statuses)
	}
}

func TestGetRoomByIdMembersOnly(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	addUser(store, "U2", "bob")
	roomId := mustCreateRoom(t, svc, "U1", "Kitchen")

	_, err := svc.GetRoomById("U2", roomId)
	if !errorx.IsCode(err, errorx.CodeForbidden) {
		t.Errorf("non-member detail view should be refused, got %v", err)
	}

	detail, err := svc.GetRoomById("U1", roomId)
	if err != nil {
		t.Fatalf("GetRoomById: %v", err)
	}
	if !detail.Owner || len(detail.Members) != 1 {
		t.Errorf("unexpected detail: %+v", detail)
	}
}

func TestFindMemberExcludesMembersAndPending(t *testing.T) {
	svc, store, _ := newFixture()
	addUser(store, "U1", "alice")
	addUser(store, "U2", "bob")
	addUser(store, "U3", "bonnie")
	addUser(store, "U4", "boris")
	roomId := mustCreateRoom(t, svc, "U1", "Kitchen")
	joinAndAccept(t, svc, roomId, "U2", "U1")
	if err := svc.InviteUser("U1", request.InviteUserRequest{RoomId: roomId, UserUuid: "U3"}); err != nil {
		t.Fatalf("InviteUser: %v", err)
	}

	results, err := svc.FindMember("U1", request.FindMemberRequest{RoomId: roomId, Query: "bo"})
	if err != nil {
		t.Fatalf("FindMember: %v", err)
	}
	if len(results) != 1 || results[0].UserUuid != "U4" {
		t.Errorf("only U4 should be invitable, got %+v", results)
	}
}
