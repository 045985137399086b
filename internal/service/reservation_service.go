package service

import (
	"context"

	"campus-parking/internal/model"
	"campus-parking/internal/repository"
	apperrors "campus-parking/pkg/app_errors"
)

type ReservationService interface {
	GetByID(ctx context.Context, id int, identity model.Identity) (*model.Reservation, error)
	ListByUser(ctx context.Context, userID int) ([]*model.Reservation, error)
	// CanAccess realtime hub 加入 reservation 房間前的授權檢查
	CanAccess(ctx context.Context, identity model.Identity, reservationID int) bool
}

type ReservationServiceImpl struct {
	repo repository.ReservationRepository
}

func NewReservationService(repo repository.ReservationRepository) ReservationService {
	return &ReservationServiceImpl{repo: repo}
}

func (s *ReservationServiceImpl) GetByID(ctx context.Context, id int, identity model.Identity) (*model.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if reservation.UserID != identity.UserID && !identity.IsPrivileged() {
		return nil, apperrors.ErrUnauthorized
	}

	return reservation, nil
}

func (s *ReservationServiceImpl) ListByUser(ctx context.Context, userID int) ([]*model.Reservation, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *ReservationServiceImpl) CanAccess(ctx context.Context, identity model.Identity, reservationID int) bool {
	if identity.IsPrivileged() {
		return true
	}

	reservation, err := s.repo.FindByID(ctx, reservationID)
	if err != nil {
		return false
	}

	return reservation.UserID == identity.UserID
}
