package payroll

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeek_UnmarshalNormalizesKeys(t *testing.T) {
	var w Week[bool]
	require.NoError(t, json.Unmarshal([]byte(`{"monday": true, "sunday": true}`), &w))

	assert.Equal(t, map[string]bool{
		"monday": true, "tuesday": false, "wednesday": false,
		"thursday": false, "friday": false, "saturday": false,
	}, w.Map())
	assert.Equal(t, 1, DaysPresent(w))
}

func TestWeek_MarshalAlwaysHasSixKeys(t *testing.T) {
	var w Week[string]
	w.Set(Friday, "Block 4, Ortigas")

	out, err := json.Marshal(w)
	require.NoError(t, err)
	assert.JSONEq(t, `{"monday":"","tuesday":"","wednesday":"","thursday":"","friday":"Block 4, Ortigas","saturday":""}`, string(out))
}

func TestWeek_KeysAreCaseInsensitive(t *testing.T) {
	var w Week[int]
	require.NoError(t, json.Unmarshal([]byte(`{"Monday": 10, "SATURDAY": 5, "holiday": 99}`), &w))

	assert.Equal(t, 10, w.Get(Monday))
	assert.Equal(t, 5, w.Get(Saturday))
	assert.Equal(t, 15, TotalMinutes(w))
}

func TestWeek_DecimalTotals(t *testing.T) {
	var w Week[decimal.Decimal]
	require.NoError(t, json.Unmarshal([]byte(`{"monday": "1.5", "wednesday": 2, "sunday": 8}`), &w))

	assert.True(t, TotalHours(w).Equal(decimal.RequireFromString("3.5")))
}

func TestWeek_RejectsWrongValueType(t *testing.T) {
	var w Week[bool]
	assert.Error(t, json.Unmarshal([]byte(`{"monday": "yes"}`), &w))
}

func TestNormalizeWeek(t *testing.T) {
	w := NormalizeWeek(map[string]string{"tuesday": "Site A", "sunday": "Site B"})

	assert.Equal(t, "Site A", w.Get(Tuesday))
	assert.Equal(t, "", w.Get(Monday))
	assert.Len(t, w.Map(), DaysPerWeek)
}

func TestParseWeekday(t *testing.T) {
	d, ok := ParseWeekday(" Thursday ")
	assert.True(t, ok)
	assert.Equal(t, Thursday, d)

	_, ok = ParseWeekday("sunday")
	assert.False(t, ok)
}

func TestCreatePayrollRequest_ValidateCollectsAllErrors(t *testing.T) {
	wd := -1
	req := CreatePayrollRequest{
		EmployeeID:     "nope",
		PayPeriodStart: "2026-03-15",
		PayPeriodEnd:   "2026-03-01",
		WorkingDays:    &wd,
		CashAdvance:    decimal.NewFromInt(-5),
	}

	err := req.Validate()
	require.Error(t, err)
	fields := err.(interface{ ToMap() map[string]string }).ToMap()
	assert.Contains(t, fields, "employee_id")
	assert.Contains(t, fields, "pay_period_end")
	assert.Contains(t, fields, "working_days")
	assert.Contains(t, fields, "cash_advance")
}

func TestUpdatePayrollRequest_NeedsRecalculation(t *testing.T) {
	period := "2026-03-01"
	assert.False(t, (&UpdatePayrollRequest{PayPeriodStart: &period, DailySiteAddress: &Week[string]{}}).NeedsRecalculation())

	cash := decimal.NewFromInt(200)
	assert.True(t, (&UpdatePayrollRequest{CashAdvance: &cash}).NeedsRecalculation())
	assert.True(t, (&UpdatePayrollRequest{DailyLate: &Week[int]{}}).NeedsRecalculation())
}

func TestWeek_JSONRoundTrip(t *testing.T) {
	var w Week[decimal.Decimal]
	w.Set(Monday, decimal.RequireFromString("1.5"))
	w.Set(Saturday, decimal.RequireFromString("2"))

	out, err := json.Marshal(w)
	require.NoError(t, err)

	var back Week[decimal.Decimal]
	require.NoError(t, json.Unmarshal(out, &back))
	assert.True(t, back.Get(Monday).Equal(w.Get(Monday)))
	assert.True(t, back.Get(Saturday).Equal(w.Get(Saturday)))
	assert.True(t, TotalHours(back).Equal(decimal.RequireFromString("3.5")))
}
