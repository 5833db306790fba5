package Controllers

import (
	"testing"

	"ProSpine/Models"

	"github.com/stretchr/testify/assert"
)

func TestFetchRegistrationsStatsAndPagination(t *testing.T) {
	db := setupHandlerTest(t)
	branch := seedTestBranch(t, db, "Main")

	names := []struct {
		name   string
		status string
	}{
		{"Asha Verma", Models.RegistrationPending},
		{"Binod Karki", Models.RegistrationPending},
		{"Chandra Rai", Models.RegistrationConsulted},
	}
	for i, entry := range names {
		registration := Models.Registration{
			BranchID:    branch.ID,
			PatientName: entry.name,
			PhoneNumber: "980000010" + string(rune('0'+i)),
			Status:      entry.status,
		}
		assert.NoError(t, db.Create(&registration).Error)
	}

	c, w := getContext(t, "/FetchRegistrations?limit=2&page=1", branch.ID, Models.RoleReception)
	FetchRegistrations(c)

	assert.Equal(t, 200, w.Code)
	data := responseData(t, w)
	assert.Equal(t, float64(3), data["total"])
	assert.Len(t, data["registrations"].([]interface{}), 2)

	stats := data["stats"].(map[string]interface{})
	assert.Equal(t, float64(2), stats[Models.RegistrationPending])
	assert.Equal(t, float64(1), stats[Models.RegistrationConsulted])
	assert.Equal(t, float64(0), stats[Models.RegistrationCancelled])
	assert.Equal(t, float64(3), stats["total"])

	c, w = getContext(t, "/FetchRegistrations?limit=2&page=2", branch.ID, Models.RoleReception)
	FetchRegistrations(c)
	data = responseData(t, w)
	assert.Len(t, data["registrations"].([]interface{}), 1)
}

func TestFetchRegistrationsStatusFilterKeepsBranchStats(t *testing.T) {
	db := setupHandlerTest(t)
	branch := seedTestBranch(t, db, "Main")

	for _, status := range []string{Models.RegistrationPending, Models.RegistrationConsulted} {
		registration := Models.Registration{
			BranchID:    branch.ID,
			PatientName: "Patient " + status,
			PhoneNumber: "98000002" + status[:2],
			Status:      status,
		}
		assert.NoError(t, db.Create(&registration).Error)
	}

	c, w := getContext(t, "/FetchRegistrations?status=pending", branch.ID, Models.RoleReception)
	FetchRegistrations(c)
	data := responseData(t, w)

	// The listing honors the filter; the counters still span the branch.
	assert.Equal(t, float64(1), data["total"])
	stats := data["stats"].(map[string]interface{})
	assert.Equal(t, float64(2), stats["total"])
	assert.Equal(t, float64(1), stats[Models.RegistrationConsulted])
}
