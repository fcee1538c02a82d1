package card_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/apperr"
	"github.com/MrJamesThe3rd/cardly/internal/audit"
	"github.com/MrJamesThe3rd/cardly/internal/card"
	"github.com/MrJamesThe3rd/cardly/internal/franchise"
)

func TestService_Create(t *testing.T) {
	franchiseeID := uuid.New()
	estID := uuid.New()

	type testCase struct {
		name      string
		actor     access.Actor
		params    card.CreateParams
		setupMock func(repo *card.MockRepository, est *card.MockEstablishmentFinder)
		wantKind  apperr.Kind
		wantCode  string
	}

	tests := []testCase{
		{
			name:   "FranchiseeWithCode",
			actor:  access.Actor{Role: access.RoleFranchisee, FranchiseeID: franchiseeID},
			params: card.CreateParams{Code: " abc123 "},
			setupMock: func(repo *card.MockRepository, _ *card.MockEstablishmentFinder) {
				repo.EXPECT().
					CreateCard(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *card.Card, rec audit.Entry) error {
						assert.Equal(t, franchiseeID, c.FranchiseeID)
						assert.Equal(t, card.StatusAvailable, c.Status)
						assert.True(t, c.Balance.IsZero())
						assert.Equal(t, "card.create", rec.Action)
						c.ID = uuid.New()

						return nil
					})
			},
			wantCode: "ABC123",
		},
		{
			name:   "BoundToForeignEstablishment",
			actor:  access.Actor{Role: access.RoleFranchisee, FranchiseeID: franchiseeID},
			params: card.CreateParams{EstablishmentID: &estID},
			setupMock: func(_ *card.MockRepository, est *card.MockEstablishmentFinder) {
				est.EXPECT().
					GetEstablishment(gomock.Any(), estID).
					Return(&franchise.Establishment{ID: estID, FranchiseeID: uuid.New()}, nil)
			},
			wantKind: apperr.KindValidation,
		},
		{
			name:     "FranchisorWithoutFranchisee",
			actor:    access.Actor{Role: access.RoleFranchisor},
			wantKind: apperr.KindValidation,
		},
		{
			name:     "EstablishmentForbidden",
			actor:    access.Actor{Role: access.RoleEstablishment, FranchiseeID: franchiseeID, EstablishmentID: estID},
			wantKind: apperr.KindForbidden,
		},
		{
			name:   "DuplicateCode",
			actor:  access.Actor{Role: access.RoleFranchisor},
			params: card.CreateParams{Code: "DUP", FranchiseeID: franchiseeID},
			setupMock: func(repo *card.MockRepository, _ *card.MockEstablishmentFinder) {
				repo.EXPECT().
					CreateCard(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(apperr.Conflict("card already exists (cards_code_key)"))
			},
			wantKind: apperr.KindConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := card.NewMockRepository(ctrl)
			est := card.NewMockEstablishmentFinder(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, est)
			}

			svc := card.NewService(repo, est, zap.NewNop())
			got, err := svc.Create(context.Background(), tt.actor, tt.params)

			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, got.Code)
		})
	}
}

func TestService_Block(t *testing.T) {
	franchiseeID := uuid.New()

	type testCase struct {
		name       string
		actor      access.Actor
		stored     card.Card
		wantKind   apperr.Kind
		wantStatus card.Status
	}

	tests := []testCase{
		{
			name:       "ActiveBecomesExpired",
			actor:      access.Actor{Role: access.RoleFranchisee, FranchiseeID: franchiseeID},
			stored:     card.Card{Status: card.StatusActive, Balance: decimal.NewFromInt(5), FranchiseeID: franchiseeID},
			wantStatus: card.StatusExpired,
		},
		{
			name:     "OtherFranchisee",
			actor:    access.Actor{Role: access.RoleFranchisee, FranchiseeID: uuid.New()},
			stored:   card.Card{Status: card.StatusActive, FranchiseeID: franchiseeID},
			wantKind: apperr.KindForbidden,
		},
		{
			name:     "AlreadyExpired",
			actor:    access.Actor{Role: access.RoleFranchisor},
			stored:   card.Card{Status: card.StatusExpired, FranchiseeID: franchiseeID},
			wantKind: apperr.KindInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := card.NewMockRepository(ctrl)
			repo.EXPECT().
				UpdateCard(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, id uuid.UUID, mutate func(*card.Card) error, rec audit.Entry) (*card.Card, error) {
					assert.Equal(t, "card.block", rec.Action)

					c := tt.stored
					c.ID = id

					if err := mutate(&c); err != nil {
						return nil, err
					}

					return &c, nil
				})

			svc := card.NewService(repo, card.NewMockEstablishmentFinder(ctrl), zap.NewNop())
			got, err := svc.Block(context.Background(), tt.actor, uuid.New())

			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.True(t, got.Balance.Equal(tt.stored.Balance))
		})
	}
}

func TestService_GetByCode(t *testing.T) {
	franchiseeID := uuid.New()
	estID := uuid.New()

	type testCase struct {
		name     string
		actor    access.Actor
		stored   *card.Card
		wantKind apperr.Kind
	}

	tests := []testCase{
		{
			name:   "EstablishmentOfSameFranchisee",
			actor:  access.Actor{Role: access.RoleEstablishment, FranchiseeID: franchiseeID, EstablishmentID: estID},
			stored: &card.Card{ID: uuid.New(), Code: "C1", FranchiseeID: franchiseeID},
		},
		{
			name:     "EstablishmentOfOtherFranchisee",
			actor:    access.Actor{Role: access.RoleEstablishment, FranchiseeID: uuid.New(), EstablishmentID: estID},
			stored:   &card.Card{ID: uuid.New(), Code: "C1", FranchiseeID: franchiseeID},
			wantKind: apperr.KindForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := card.NewMockRepository(ctrl)
			repo.EXPECT().GetCardByCode(gomock.Any(), "C1").Return(tt.stored, nil)

			svc := card.NewService(repo, card.NewMockEstablishmentFinder(ctrl), zap.NewNop())
			got, err := svc.GetByCode(context.Background(), tt.actor, " c1")

			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.stored.ID, got.ID)
		})
	}
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	franchiseeID := uuid.New()
	actor := access.Actor{Role: access.RoleFranchisee, FranchiseeID: franchiseeID}

	repo := card.NewMockRepository(ctrl)
	repo.EXPECT().
		DeleteCard(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, check func(*card.Card) error, _ audit.Entry) error {
			if err := check(&card.Card{FranchiseeID: franchiseeID}); err != nil {
				return err
			}

			return apperr.Conflict("card C1 has 2 transactions and cannot be deleted")
		})

	svc := card.NewService(repo, card.NewMockEstablishmentFinder(ctrl), zap.NewNop())

	err := svc.Delete(context.Background(), actor, uuid.New())
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}
