package services

import (
	"context"
	"errors"

	"poolride/internal/apperrors"
	"poolride/internal/models"
	"poolride/internal/repositories/interfaces"
	"poolride/internal/utils"
	"poolride/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GroupInput creates or renames a group.
type GroupInput struct {
	GroupName  string `json:"group_name" binding:"required"`
	GroupColor string `json:"group_color"`
}

// GroupMemberInput identifies a member to add or remove by email.
type GroupMemberInput struct {
	Email string `json:"email" binding:"required,email"`
}

// GroupSummary is a group plus whether any of its rides are new to the
// caller.
type GroupSummary struct {
	Group      *models.Group `json:"group"`
	HasNewRide bool          `json:"has_new_ride"`
}

// GroupDetails expands member ids into display blocks.
type GroupDetails struct {
	Group   *models.Group  `json:"group"`
	Members []*models.User `json:"members"`
}

type GroupService interface {
	// CreateGroup creates a group with the caller as its first member.
	CreateGroup(ctx context.Context, subject string, input *GroupInput) (*models.Group, error)

	// GetGroups lists the caller's groups, flagging groups with unread
	// ride notifications.
	GetGroups(ctx context.Context, subject string) ([]*GroupSummary, error)

	GetGroupByID(ctx context.Context, groupID string) (*GroupDetails, error)
	UpdateGroup(ctx context.Context, groupID string, input *GroupInput) error
	AddUserToGroup(ctx context.Context, groupID string, input *GroupMemberInput) (*models.Group, error)
	RemoveUserFromGroup(ctx context.Context, groupID string, input *GroupMemberInput) (*models.Group, error)
}

type groupService struct {
	groupRepo        interfaces.GroupRepository
	userRepo         interfaces.UserRepository
	notificationRepo interfaces.NotificationRepository
	logger           *logger.Logger
}

func NewGroupService(
	groupRepo interfaces.GroupRepository,
	userRepo interfaces.UserRepository,
	notificationRepo interfaces.NotificationRepository,
	logger *logger.Logger,
) GroupService {
	return &groupService{
		groupRepo:        groupRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

func (s *groupService) CreateGroup(ctx context.Context, subject string, input *GroupInput) (*models.Group, error) {
	user, err := resolveSubject(ctx, s.userRepo, subject)
	if err != nil {
		return nil, err
	}

	group := &models.Group{
		GroupName:  input.GroupName,
		GroupColor: input.GroupColor,
		Users:      []primitive.ObjectID{user.ID},
	}
	if group.GroupColor == "" {
		group.GroupColor = "#000000"
	}

	if err := s.groupRepo.Create(ctx, group); err != nil {
		if errors.Is(err, interfaces.ErrDuplicate) {
			return nil, apperrors.Conflict("Group name already taken")
		}
		return nil, apperrors.Internal(err)
	}

	s.logger.WithUserID(user.ID).WithField("group_id", group.ID.Hex()).Info("Group created")
	return group, nil
}

func (s *groupService) GetGroups(ctx context.Context, subject string) ([]*GroupSummary, error) {
	user, err := resolveSubject(ctx, s.userRepo, subject)
	if err != nil {
		return nil, err
	}

	groups, err := s.groupRepo.GetByMember(ctx, user.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	unread, err := s.notificationRepo.GetUnreadByUser(ctx, user.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	flagged := make(map[primitive.ObjectID]bool, len(unread))
	for _, n := range unread {
		flagged[n.GroupID] = true
	}

	summaries := make([]*GroupSummary, 0, len(groups))
	for _, group := range groups {
		summaries = append(summaries, &GroupSummary{
			Group:      group,
			HasNewRide: flagged[group.ID],
		})
	}

	return summaries, nil
}

func (s *groupService) GetGroupByID(ctx context.Context, groupID string) (*GroupDetails, error) {
	group, err := s.getGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	details := &GroupDetails{Group: group, Members: []*models.User{}}
	for _, memberID := range group.Users {
		member, err := s.userRepo.GetByID(ctx, memberID)
		if err != nil {
			continue
		}
		details.Members = append(details.Members, member)
	}

	return details, nil
}

func (s *groupService) UpdateGroup(ctx context.Context, groupID string, input *GroupInput) error {
	group, err := s.getGroup(ctx, groupID)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{"group_name": input.GroupName}
	if input.GroupColor != "" {
		updates["group_color"] = input.GroupColor
	}

	if err := s.groupRepo.Update(ctx, group.ID, updates); err != nil {
		return apperrors.Internal(err)
	}

	return nil
}

func (s *groupService) AddUserToGroup(ctx context.Context, groupID string, input *GroupMemberInput) (*models.Group, error) {
	return s.changeMembership(ctx, groupID, input.Email, s.groupRepo.AddUser)
}

func (s *groupService) RemoveUserFromGroup(ctx context.Context, groupID string, input *GroupMemberInput) (*models.Group, error) {
	return s.changeMembership(ctx, groupID, input.Email, s.groupRepo.RemoveUser)
}

func (s *groupService) changeMembership(
	ctx context.Context,
	groupID string,
	email string,
	op func(context.Context, primitive.ObjectID, primitive.ObjectID) (*models.Group, error),
) (*models.Group, error) {
	group, err := s.getGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	member, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperrors.NotFound(utils.MsgUserNotFound)
		}
		return nil, apperrors.Internal(err)
	}

	updated, err := op(ctx, group.ID, member.ID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperrors.NotFound(utils.MsgGroupNotFound)
		}
		return nil, apperrors.Internal(err)
	}

	return updated, nil
}

func (s *groupService) getGroup(ctx context.Context, groupID string) (*models.Group, error) {
	id, err := primitive.ObjectIDFromHex(groupID)
	if err != nil {
		return nil, apperrors.NotFound(utils.MsgGroupNotFound)
	}

	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperrors.NotFound(utils.MsgGroupNotFound)
		}
		return nil, apperrors.Internal(err)
	}

	return group, nil
}
