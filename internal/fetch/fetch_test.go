package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientMETAR(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/metar", r.URL.Path)
		assert.Equal(t, "EGMC", r.URL.Query().Get("ids"))
		fmt.Fprintln(w, "METAR EGMC 201650Z 31009KT 280V360 9999 BKN019 03/M00 Q1014")
	}))
	defer server.Close()

	client := NewClient(nil, WithBaseURL(server.URL))
	metar, err := client.METAR(context.Background(), "egmc")
	require.NoError(t, err)

	assert.Equal(t, "EGMC", metar.Station)
	require.NotNil(t, metar.ReceiptTime)
	assert.Equal(t, "UTC", metar.ReceiptTime.Location().String())
}

func TestClientTAF_multiline(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/taf", r.URL.Path)
		fmt.Fprintln(w, "TAF EGMC 201701Z 2018/2102 32012KT 9999 BKN018")
		fmt.Fprintln(w, "  TEMPO 2020/2102 BKN012")
	}))
	defer server.Close()

	client := NewClient(nil, WithBaseURL(server.URL))
	taf, err := client.TAF(context.Background(), "EGMC")
	require.NoError(t, err)

	assert.Equal(t, "EGMC", taf.Station)
	require.Len(t, taf.Changes, 1)
}

func TestClientMETAR_retriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprintln(w, "METAR EGMC 201650Z 31009KT 9999 Q1014")
	}))
	defer server.Close()

	client := NewClient(nil, WithBaseURL(server.URL))
	metar, err := client.METAR(context.Background(), "EGMC")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "EGMC", metar.Station)
}

func TestClientMETAR_noData(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	client := NewClient(nil, WithBaseURL(server.URL))
	_, err := client.METAR(context.Background(), "ZZZZ")
	assert.ErrorContains(t, err, "no METAR data")
}

func TestClientMETAR_notFoundIsPermanent(t *testing.T) {
	t.Parallel()

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(nil, WithBaseURL(server.URL))
	_, err := client.METAR(context.Background(), "EGMC")
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
