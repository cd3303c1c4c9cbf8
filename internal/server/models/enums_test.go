package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServiceType(t *testing.T) {
	for _, st := range AllServiceTypes() {
		got, err := ParseServiceType(string(st))
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}

	_, err := ParseServiceType("Vídeo")
	assert.ErrorIs(t, err, ErrUnknownServiceType)
}

func TestServiceType_Label(t *testing.T) {
	assert.Equal(t, "Auxiliar T.", ServiceTechnicalAssistant.Label())
	assert.Equal(t, "Vídeo", ServiceVideo.Label())
	assert.Equal(t, "mystery", ServiceType("mystery").Label())
	for _, st := range AllServiceTypes() {
		assert.NotEqual(t, string(st), st.Label(), "service %s has no display name", st)
	}
}

func TestAllServiceTypes_OrderAndCopy(t *testing.T) {
	all := AllServiceTypes()
	require.Len(t, all, 9)
	assert.Equal(t, ServiceVideo, all[0])
	assert.Equal(t, ServiceOther, all[8])

	all[0] = "mutated"
	assert.Equal(t, ServiceVideo, AllServiceTypes()[0])
}

func TestJobStatus_TextRoundTrip(t *testing.T) {
	type wrapper struct {
		Status JobStatus `json:"status"`
	}
	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"status":"review"}`), &w))
	assert.Equal(t, StatusReview, w.Status)

	err := json.Unmarshal([]byte(`{"status":"done"}`), &w)
	assert.ErrorIs(t, err, ErrUnknownJobStatus)

	_, err = json.Marshal(wrapper{Status: "bogus"})
	assert.Error(t, err)

	data, err := json.Marshal(wrapper{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":""}`, string(data))

	w = wrapper{Status: StatusPaid}
	require.NoError(t, json.Unmarshal(data, &w))
	assert.Empty(t, w.Status)
}

func TestEnums_Scan(t *testing.T) {
	var st ServiceType
	require.NoError(t, st.Scan([]byte("photo")))
	assert.Equal(t, ServicePhoto, st)
	assert.Error(t, st.Scan(12))
	assert.Error(t, st.Scan("film"))

	var js JobStatus
	require.NoError(t, js.Scan("paid"))
	assert.Equal(t, StatusPaid, js)

	v, err := js.Value()
	require.NoError(t, err)
	assert.Equal(t, "paid", v)
}

func TestParseDraftType(t *testing.T) {
	dt, err := ParseDraftType("script")
	require.NoError(t, err)
	assert.Equal(t, DraftScript, dt)

	_, err = ParseDraftType("SCRIPT")
	assert.Error(t, err)
}

func TestJob_CostOrZero(t *testing.T) {
	j := &Job{}
	assert.True(t, j.CostOrZero().IsZero())

	j.Cost = decimal.NewNullDecimal(decimal.NewFromInt(40))
	assert.True(t, j.CostOrZero().Equal(decimal.NewFromInt(40)))
}

func TestRefreshToken_Expired(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, (&RefreshToken{Expires: now.Add(time.Second)}).Expired(now))
	assert.True(t, (&RefreshToken{Expires: now}).Expired(now))
	assert.True(t, (&RefreshToken{}).Expired(now))
}
