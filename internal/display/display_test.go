package display_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cardly/internal/apperr"
	"github.com/MrJamesThe3rd/cardly/internal/display"
)

func TestDisplay_Apply(t *testing.T) {
	at := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	est := uuid.New()
	other := uuid.New()

	type testCase struct {
		name       string
		display    display.Display
		change     display.Change
		wantKind   apperr.Kind
		wantStatus display.Status
		wantEst    *uuid.UUID
	}

	tests := []testCase{
		{
			name:       "BindImpliesInstalled",
			display:    display.Display{Status: display.StatusAvailable},
			change:     display.Change{EstablishmentID: &est},
			wantStatus: display.StatusInstalled,
			wantEst:    &est,
		},
		{
			name:       "ClearImpliesAvailable",
			display:    display.Display{Status: display.StatusInstalled, EstablishmentID: &est, InstalledAt: &at},
			change:     display.Change{ClearEstablishment: true},
			wantStatus: display.StatusAvailable,
		},
		{
			name:     "InstalledWithoutEstablishment",
			display:  display.Display{Status: display.StatusAvailable},
			change:   display.Change{Status: new(display.StatusInstalled)},
			wantKind: apperr.KindValidation,
		},
		{
			name:       "ExplicitMaintenanceKeepsBinding",
			display:    display.Display{Status: display.StatusInstalled, EstablishmentID: &est},
			change:     display.Change{Status: new(display.StatusMaintenance)},
			wantStatus: display.StatusMaintenance,
			wantEst:    &est,
		},
		{
			name:     "AvailableToMaintenance",
			display:  display.Display{Status: display.StatusAvailable},
			change:   display.Change{Status: new(display.StatusMaintenance)},
			wantKind: apperr.KindInvalidTransition,
		},
		{
			name:       "ExplicitAvailableClearsBinding",
			display:    display.Display{Status: display.StatusMaintenance, EstablishmentID: &est},
			change:     display.Change{Status: new(display.StatusAvailable)},
			wantStatus: display.StatusAvailable,
		},
		{
			name:       "MoveToAnotherEstablishment",
			display:    display.Display{Status: display.StatusInstalled, EstablishmentID: &est, InstalledAt: &at},
			change:     display.Change{EstablishmentID: &other},
			wantStatus: display.StatusInstalled,
			wantEst:    &other,
		},
		{
			name:     "InstallDateWhileAvailable",
			display:  display.Display{Status: display.StatusAvailable},
			change:   display.Change{InstalledAt: &at},
			wantKind: apperr.KindValidation,
		},
		{
			name:     "BindAndClear",
			display:  display.Display{Status: display.StatusAvailable},
			change:   display.Change{EstablishmentID: &est, ClearEstablishment: true},
			wantKind: apperr.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.display

			err := d.Apply(tt.change, at)
			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, d.Status)
			assert.Equal(t, tt.wantEst, d.EstablishmentID)

			if d.Status == display.StatusInstalled {
				assert.NotNil(t, d.InstalledAt)
			}

			if d.Status == display.StatusAvailable {
				assert.Nil(t, d.InstalledAt)
			}
		})
	}
}

func TestDisplay_ApplyInstallationDate(t *testing.T) {
	installed := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	now := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	supplied := time.Date(2025, 6, 30, 9, 0, 0, 0, time.UTC)
	est := uuid.New()
	other := uuid.New()

	type testCase struct {
		name   string
		change display.Change
		want   time.Time
	}

	tests := []testCase{
		{
			name:   "MoveRestampsInstallation",
			change: display.Change{EstablishmentID: &other},
			want:   now,
		},
		{
			name:   "MoveKeepsSuppliedDate",
			change: display.Change{EstablishmentID: &other, InstalledAt: &supplied},
			want:   supplied,
		},
		{
			name:   "SameEstablishmentKeepsDate",
			change: display.Change{EstablishmentID: &est},
			want:   installed,
		},
		{
			name:   "UnitTypeOnlyKeepsDate",
			change: display.Change{},
			want:   installed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := display.Display{Status: display.StatusInstalled, EstablishmentID: &est, InstalledAt: &installed}

			require.NoError(t, d.Apply(tt.change, now))
			require.NotNil(t, d.InstalledAt)
			assert.Equal(t, tt.want, *d.InstalledAt)
		})
	}
}
