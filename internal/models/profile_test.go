package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDashboardPath(t *testing.T) {
	require.Equal(t, "/superadmin/dashboard", DashboardPath(RoleSuperadmin))
	require.Equal(t, "/admin/dashboard", DashboardPath(RoleAdmin))
	require.Equal(t, "/coach/dashboard", DashboardPath(RoleCoach))
	require.Equal(t, "/client/dashboard", DashboardPath(RoleClient))

	// Anything unrecognized goes back to the login page.
	require.Equal(t, "/login", DashboardPath(""))
	require.Equal(t, "/login", DashboardPath("manager"))
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleSuperadmin, RoleAdmin, RoleCoach, RoleClient} {
		require.True(t, ValidRole(role))
	}
	require.False(t, ValidRole(""))
	require.False(t, ValidRole("Admin"))
	require.False(t, ValidRole("janitor"))
}

func TestValidBookingStatus(t *testing.T) {
	for _, status := range []string{BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted} {
		require.True(t, ValidBookingStatus(status))
	}
	require.False(t, ValidBookingStatus(""))
	require.False(t, ValidBookingStatus("archived"))
}
