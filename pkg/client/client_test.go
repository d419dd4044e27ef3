package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsmops/zeeklook/pkg/config"
	"github.com/nsmops/zeeklook/pkg/models"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cli := NewClient(config.Context{
		Name:     "test",
		URL:      srv.URL,
		Username: "operator",
		Password: "secret",
	}, "test")
	return cli, srv
}

func TestListLogTypes(t *testing.T) {
	var gotAuth bool
	cli, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/zeek/logs", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		gotAuth = ok && user == "operator" && pass == "secret"
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"logs":[
			{"type":"conn","display":"Connections","available":true,"estimated_count":12345},
			{"type":"dns","display":"DNS","available":false,"estimated_count":0}
		]}`))
	})

	types, err := cli.ListLogTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.True(t, gotAuth, "request must carry basic auth")
	assert.Equal(t, "conn", types[0].Type)
	assert.Equal(t, 12345, types[0].EstimatedCount)
	assert.False(t, types[1].Available)
}

func TestFetchPageQueryParams(t *testing.T) {
	var gotQuery url.Values
	cli, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/zeek/logs/dns", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"entries":[{"ts":1700000000.5,"uid":"C1","query":"example.com"}],
			"total":181,"page":2,"per_page":100,"total_pages":2,"log_type":"dns"
		}`))
	})

	result, err := cli.FetchPage(context.Background(), PageRequest{
		LogType: "dns",
		Page:    2,
		PerPage: 100,
		Filters: models.FilterCriteria{IP: "10.0.0.5", Proto: "udp", Hours: 24},
	})
	require.NoError(t, err)

	assert.Equal(t, "2", gotQuery.Get("page"))
	assert.Equal(t, "100", gotQuery.Get("per_page"))
	assert.Equal(t, "10.0.0.5", gotQuery.Get("ip"))
	assert.Equal(t, "udp", gotQuery.Get("proto"))
	assert.Equal(t, "24", gotQuery.Get("hours"))
	// empty filters are omitted, not sent blank
	assert.False(t, gotQuery.Has("port"))
	assert.False(t, gotQuery.Has("search"))

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "C1", result.Entries[0].UID())
	assert.Equal(t, 181, result.Total)
	assert.Equal(t, 2, result.TotalPages)
}

func TestFetchPageHTTPError(t *testing.T) {
	cli, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "zeek backend unavailable", http.StatusBadGateway)
	})

	result, err := cli.FetchPage(context.Background(), PageRequest{LogType: "conn", Page: 1, PerPage: 50})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "zeek backend unavailable")
}

func TestFetchPageMalformedBody(t *testing.T) {
	cli, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"entries": [`))
	})

	result, err := cli.FetchPage(context.Background(), PageRequest{LogType: "conn", Page: 1, PerPage: 50})
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestServiceStats(t *testing.T) {
	cli, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/zeek/stats/services", r.URL.Path)
		assert.Equal(t, "6", r.URL.Query().Get("hours"))
		_, _ = w.Write([]byte(`{"services":[{"service":"dns","count":900},{"service":"http","count":120}]}`))
	})

	services, err := cli.ServiceStats(context.Background(), 6)
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "dns", services[0].Service)
	assert.Equal(t, 900, services[0].Count)
}

func TestDNSStatistics(t *testing.T) {
	cli, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/zeek/stats/dns", r.URL.Path)
		assert.Equal(t, "24", r.URL.Query().Get("hours"))
		_, _ = w.Write([]byte(`{
			"top_domains":[{"domain":"example.com","count":300},{"domain":"example.org","count":12}],
			"query_types":{"A":250,"AAAA":62},
			"response_codes":{"NOERROR":280,"NXDOMAIN":32},
			"total_queries":312
		}`))
	})

	stats, err := cli.DNSStatistics(context.Background(), 24)
	require.NoError(t, err)
	require.Len(t, stats.TopDomains, 2)
	assert.Equal(t, "example.com", stats.TopDomains[0].Domain)
	assert.Equal(t, 300, stats.TopDomains[0].Count)
	assert.Equal(t, 250, stats.QueryTypes["A"])
	assert.Equal(t, 32, stats.ResponseCodes["NXDOMAIN"])
	assert.Equal(t, 312, stats.TotalQueries)
}

func TestConnectionTrends(t *testing.T) {
	cli, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/zeek/stats/trends", r.URL.Path)
		assert.Equal(t, "24", r.URL.Query().Get("hours"))
		assert.Equal(t, "30", r.URL.Query().Get("interval"))
		_, _ = w.Write([]byte(`{"trends":[{"time":"2026-08-31T10:00:00","count":42}]}`))
	})

	trends, err := cli.ConnectionTrends(context.Background(), 24, 30)
	require.NoError(t, err)
	require.Len(t, trends, 1)
	assert.Equal(t, 42, trends[0].Count)
}
