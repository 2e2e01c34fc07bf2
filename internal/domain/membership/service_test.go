package membership_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"society-ledger/internal/domain/membership"
	"society-ledger/internal/domain/session"
	"society-ledger/internal/domain/society"
	"society-ledger/internal/repository/memory"
)

func newService() (*membership.Service, *memory.SessionStore) {
	sessions := memory.NewSessionStore()
	return membership.NewService(memory.NewStore(), sessions), sessions
}

func register(t *testing.T, svc *membership.Service, maintenance float64) *membership.Auth {
	t.Helper()
	auth, err := svc.RegisterApartment(context.Background(), membership.RegisterInput{
		SecretaryName:      "Asha",
		Phone:              "9000000000",
		ApartmentName:      "Green Heights",
		DefaultMaintenance: maintenance,
	})
	require.NoError(t, err)
	return auth
}

func TestRegisterApartment(t *testing.T) {
	svc, sessions := newService()
	auth := register(t, svc, 1500)

	assert.Equal(t, "Green Heights", auth.Apartment.Name)
	assert.Equal(t, 1500.0, auth.Apartment.DefaultMaintenance)
	assert.Equal(t, society.RoleSecretary, auth.User.Role)
	assert.Equal(t, society.SecretaryFlat, auth.User.Flat)
	assert.NotEmpty(t, auth.Session.Token)

	sess, err := sessions.Get(context.Background(), auth.Session.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.User.ID, sess.UserID)
	assert.Equal(t, auth.Apartment.ID, sess.ApartmentID)
}

func TestRegisterApartmentMaintenanceFallback(t *testing.T) {
	svc, _ := newService()
	auth := register(t, svc, 0)
	assert.Equal(t, 1000.0, auth.Apartment.DefaultMaintenance)
}

func TestRegisterApartmentValidation(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.RegisterApartment(ctx, membership.RegisterInput{Phone: "9", ApartmentName: "x"})
	require.Error(t, err)

	_, err = svc.RegisterApartment(ctx, membership.RegisterInput{SecretaryName: "a", Phone: "9", ApartmentName: "x", DefaultMaintenance: -5})
	require.Error(t, err)
}

func TestGenerateInviteCodeFormat(t *testing.T) {
	svc, _ := newService()
	auth := register(t, svc, 0)

	invite, err := svc.GenerateInviteCode(context.Background(), auth.Apartment.ID, auth.User.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(invite.Code, "INV-"))
	assert.Len(t, invite.Code, 10)
	assert.False(t, invite.Used)
}

func TestJoinApartment(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	auth := register(t, svc, 0)

	invite, err := svc.GenerateInviteCode(ctx, auth.Apartment.ID, auth.User.ID)
	require.NoError(t, err)

	joined, err := svc.JoinApartment(ctx, membership.JoinInput{
		Code:  invite.Code,
		Name:  "Ravi",
		Phone: "9111111111",
		Flat:  "A-101",
	})
	require.NoError(t, err)
	assert.Equal(t, society.RoleResident, joined.User.Role)
	assert.Equal(t, auth.Apartment.ID, joined.User.ApartmentID)
	assert.Equal(t, 1, joined.User.FamilyMembers)

	// The code is single-use; the second attempt must not find it.
	_, err = svc.JoinApartment(ctx, membership.JoinInput{
		Code:  invite.Code,
		Name:  "Meera",
		Phone: "9222222222",
		Flat:  "A-102",
	})
	require.ErrorIs(t, err, membership.ErrInviteNotFound)
}

func TestJoinApartmentRejectsDuplicatePhone(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	auth := register(t, svc, 0)

	invite, err := svc.GenerateInviteCode(ctx, auth.Apartment.ID, auth.User.ID)
	require.NoError(t, err)

	_, err = svc.JoinApartment(ctx, membership.JoinInput{
		Code:  invite.Code,
		Name:  "Imposter",
		Phone: "9000000000",
		Flat:  "B-201",
	})
	require.ErrorIs(t, err, membership.ErrPhoneTaken)

	// The failed join must not consume the invite.
	active, err := svc.ActiveInvites(ctx, auth.Apartment.ID)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestJoinApartmentUnknownCode(t *testing.T) {
	svc, _ := newService()
	register(t, svc, 0)

	_, err := svc.JoinApartment(context.Background(), membership.JoinInput{
		Code:  "INV-ZZZZZZ",
		Name:  "Ravi",
		Phone: "9111111111",
		Flat:  "A-101",
	})
	require.ErrorIs(t, err, membership.ErrInviteNotFound)
}

func TestGenerateInviteCodeSecretaryOnly(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	auth := register(t, svc, 0)

	invite, err := svc.GenerateInviteCode(ctx, auth.Apartment.ID, auth.User.ID)
	require.NoError(t, err)
	joined, err := svc.JoinApartment(ctx, membership.JoinInput{
		Code: invite.Code, Name: "Ravi", Phone: "9111111111", Flat: "A-101",
	})
	require.NoError(t, err)

	_, err = svc.GenerateInviteCode(ctx, auth.Apartment.ID, joined.User.ID)
	require.ErrorIs(t, err, membership.ErrNotSecretary)

	_, err = svc.GenerateInviteCode(ctx, auth.Apartment.ID, "nobody")
	require.ErrorIs(t, err, membership.ErrResidentNotFound)
}

func TestLogin(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	registered := register(t, svc, 0)

	auth, err := svc.Login(ctx, "9000000000")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, auth.User.ID)
	assert.NotEqual(t, registered.Session.Token, auth.Session.Token)

	_, err = svc.Login(ctx, "9999999999")
	require.ErrorIs(t, err, membership.ErrPhoneNotFound)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc, sessions := newService()
	ctx := context.Background()
	auth := register(t, svc, 0)

	require.NoError(t, svc.Logout(ctx, auth.Session.Token))

	_, err := sessions.Get(ctx, auth.Session.Token)
	require.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestActiveInvitesExcludesUsed(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	auth := register(t, svc, 0)

	first, err := svc.GenerateInviteCode(ctx, auth.Apartment.ID, auth.User.ID)
	require.NoError(t, err)
	second, err := svc.GenerateInviteCode(ctx, auth.Apartment.ID, auth.User.ID)
	require.NoError(t, err)
	require.NotEqual(t, first.Code, second.Code)

	_, err = svc.JoinApartment(ctx, membership.JoinInput{
		Code: first.Code, Name: "Ravi", Phone: "9111111111", Flat: "A-101",
	})
	require.NoError(t, err)

	active, err := svc.ActiveInvites(ctx, auth.Apartment.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, second.Code, active[0].Code)
}

func TestMe(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	auth := register(t, svc, 0)

	user, apartment, err := svc.Me(ctx, auth.Apartment.ID, auth.User.ID)
	require.NoError(t, err)
	assert.Equal(t, auth.User.ID, user.ID)
	assert.Equal(t, auth.Apartment.ID, apartment.ID)

	_, _, err = svc.Me(ctx, auth.Apartment.ID, "nobody")
	require.ErrorIs(t, err, membership.ErrResidentNotFound)
}
