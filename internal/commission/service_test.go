package commission_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/apperr"
	"github.com/MrJamesThe3rd/cardly/internal/audit"
	"github.com/MrJamesThe3rd/cardly/internal/commission"
)

func TestService_MarkPaid(t *testing.T) {
	franchiseeID := uuid.New()

	type testCase struct {
		name      string
		actor     access.Actor
		setupMock func(m *commission.MockRepository)
		wantKind  apperr.Kind
	}

	tests := []testCase{
		{
			name:  "Success",
			actor: access.Actor{UserID: uuid.New(), Role: access.RoleFranchisor},
			setupMock: func(m *commission.MockRepository) {
				m.EXPECT().
					UpdateCommission(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, id uuid.UUID, mutate func(*commission.Commission) error, rec audit.Entry) (*commission.Commission, error) {
						assert.Equal(t, "commission.pay", rec.Action)

						c := &commission.Commission{ID: id, Status: commission.StatusPending}
						if err := mutate(c); err != nil {
							return nil, err
						}

						return c, nil
					})
			},
		},
		{
			name:  "AlreadyPaid",
			actor: access.Actor{UserID: uuid.New(), Role: access.RoleFranchisor},
			setupMock: func(m *commission.MockRepository) {
				m.EXPECT().
					UpdateCommission(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, id uuid.UUID, mutate func(*commission.Commission) error, _ audit.Entry) (*commission.Commission, error) {
						return nil, mutate(&commission.Commission{ID: id, Status: commission.StatusPaid})
					})
			},
			wantKind: apperr.KindInvalidTransition,
		},
		{
			name:     "FranchiseeForbidden",
			actor:    access.Actor{UserID: uuid.New(), Role: access.RoleFranchisee, FranchiseeID: franchiseeID},
			wantKind: apperr.KindForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := commission.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := commission.NewService(repo, zap.NewNop())
			got, err := svc.MarkPaid(context.Background(), tt.actor, uuid.New())

			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, commission.StatusPaid, got.Status)
			assert.NotNil(t, got.PaidAt)
		})
	}
}

func TestService_List(t *testing.T) {
	franchiseeID := uuid.New()
	other := uuid.New()

	type testCase struct {
		name      string
		actor     access.Actor
		filter    commission.ListFilter
		wantScope access.Scope
	}

	tests := []testCase{
		{
			name:      "FranchisorUnrestricted",
			actor:     access.Actor{Role: access.RoleFranchisor},
			wantScope: access.Unrestricted(),
		},
		{
			name:      "FranchisorNarrowed",
			actor:     access.Actor{Role: access.RoleFranchisor},
			filter:    commission.ListFilter{FranchiseeID: &franchiseeID},
			wantScope: access.Franchisee(franchiseeID),
		},
		{
			name:      "FranchiseeAskingForAnother",
			actor:     access.Actor{Role: access.RoleFranchisee, FranchiseeID: franchiseeID},
			filter:    commission.ListFilter{FranchiseeID: &other},
			wantScope: access.Nothing(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := commission.NewMockRepository(ctrl)
			repo.EXPECT().
				ListCommissions(gomock.Any(), tt.wantScope, tt.filter).
				Return([]*commission.Commission{{ID: uuid.New()}}, nil)

			svc := commission.NewService(repo, zap.NewNop())
			got, err := svc.List(context.Background(), tt.actor, tt.filter)

			require.NoError(t, err)
			assert.Len(t, got, 1)
		})
	}
}

func TestService_Get_OutOfScope(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	est := uuid.New()

	repo := commission.NewMockRepository(ctrl)
	repo.EXPECT().
		GetCommission(gomock.Any(), gomock.Any()).
		Return(&commission.Commission{ID: uuid.New(), FranchiseeID: uuid.New(), EstablishmentID: est}, nil)

	svc := commission.NewService(repo, zap.NewNop())

	_, err := svc.Get(context.Background(), access.Actor{Role: access.RoleFranchisee, FranchiseeID: uuid.New()}, uuid.New())
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}
