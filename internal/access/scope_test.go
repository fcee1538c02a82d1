package access_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/apperr"
	"github.com/MrJamesThe3rd/cardly/internal/database"
)

var cols = access.Columns{Franchisee: "c.franchisee_id", Establishment: "c.establishment_id"}

func TestScope_Permits(t *testing.T) {
	franchiseeID := uuid.New()
	establishmentID := uuid.New()

	owned := access.Owner{FranchiseeID: franchiseeID, EstablishmentID: &establishmentID}
	unbound := access.Owner{FranchiseeID: franchiseeID}
	foreign := access.Owner{FranchiseeID: uuid.New()}

	type testCase struct {
		name  string
		scope access.Scope
		owner access.Owner
		want  bool
	}

	tests := []testCase{
		{name: "UnrestrictedForeign", scope: access.Unrestricted(), owner: foreign, want: true},
		{name: "FranchiseeOwn", scope: access.Franchisee(franchiseeID), owner: unbound, want: true},
		{name: "FranchiseeForeign", scope: access.Franchisee(franchiseeID), owner: foreign, want: false},
		{name: "EstablishmentOwn", scope: access.Establishment(establishmentID), owner: owned, want: true},
		{name: "EstablishmentUnbound", scope: access.Establishment(establishmentID), owner: unbound, want: false},
		{name: "Nothing", scope: access.Nothing(), owner: owned, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.scope.Permits(tt.owner))
		})
	}
}

func TestScope_Apply(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name     string
		scope    access.Scope
		cols     access.Columns
		wantSQL  string
		wantArgs []any
	}

	tests := []testCase{
		{name: "Unrestricted", scope: access.Unrestricted(), cols: cols, wantSQL: "", wantArgs: nil},
		{name: "Franchisee", scope: access.Franchisee(id), cols: cols, wantSQL: " WHERE c.franchisee_id = $1", wantArgs: []any{id}},
		{name: "Establishment", scope: access.Establishment(id), cols: cols, wantSQL: " WHERE c.establishment_id = $1", wantArgs: []any{id}},
		{
			name:    "EstablishmentOnUnownedTable",
			scope:   access.Establishment(id),
			cols:    access.Columns{Franchisee: "f.id"},
			wantSQL: " WHERE FALSE",
		},
		{name: "Nothing", scope: access.Nothing(), cols: cols, wantSQL: " WHERE FALSE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w database.Where
			tt.scope.Apply(&w, tt.cols)

			assert.Equal(t, tt.wantSQL, w.String())
			assert.Equal(t, tt.wantArgs, w.Args())
		})
	}
}

func TestScope_Narrow(t *testing.T) {
	own := uuid.New()
	other := uuid.New()

	assert.Equal(t, access.Franchisee(own), access.Unrestricted().Narrow(&own))
	assert.Equal(t, access.Unrestricted(), access.Unrestricted().Narrow(nil))
	assert.Equal(t, access.Franchisee(own), access.Franchisee(own).Narrow(&own))
	assert.Equal(t, access.Nothing(), access.Franchisee(own).Narrow(&other))
}

func TestActor(t *testing.T) {
	franchiseeID := uuid.New()
	establishmentID := uuid.New()

	establishment := access.Actor{
		UserID:          uuid.New(),
		Role:            access.RoleEstablishment,
		FranchiseeID:    franchiseeID,
		EstablishmentID: establishmentID,
	}

	assert.NoError(t, establishment.Validate())
	assert.Equal(t, access.Establishment(establishmentID), establishment.Scope())

	err := establishment.Require("approve requests", access.RoleFranchisor, access.RoleFranchisee)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	err = establishment.Authorize("card", access.Owner{FranchiseeID: franchiseeID})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	err = establishment.Authorize("card", access.Owner{FranchiseeID: franchiseeID, EstablishmentID: &establishmentID})
	assert.NoError(t, err)

	assert.Error(t, access.Actor{Role: access.RoleFranchisee}.Validate())
	assert.Error(t, access.Actor{Role: "ADMIN"}.Validate())
}
