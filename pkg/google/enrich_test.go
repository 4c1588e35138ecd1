package google

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func jitter() {
	time.Sleep(time.Duration(rand.IntN(15)) * time.Millisecond)
}

type seenSet struct {
	mu  sync.Mutex
	ids map[string]bool
}

func (s *seenSet) mark(id string) {
	s.mu.Lock()
	s.ids[id] = true
	s.mu.Unlock()
}

func (s *seenSet) seen(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ids[id]
}

func placesWithIDs(n int) []Place {
	out := make([]Place, n)
	for i := range out {
		out[i] = Place{PlaceID: fmt.Sprintf("id-%02d", i), Name: fmt.Sprintf("Place %d", i)}
	}
	return out
}

func addressBody(label string) string {
	return fmt.Sprintf(`{"status":"OK","results":[{"place_id":"addr","formatted_address":%q,"types":["street_address"]}]}`, label)
}

func TestFanOut_JoinsByOrigin(t *testing.T) {
	items := make([]int, 40)
	for i := range items {
		items[i] = i * 7
	}

	out, err := FanOut(context.Background(), items, 0, func(_ context.Context, _ int, v int) (string, error) {
		jitter()
		return fmt.Sprintf("v%d", v), nil
	})
	require.NoError(t, err)
	require.Len(t, out, len(items))
	for i, v := range items {
		assert.Equal(t, fmt.Sprintf("v%d", v), out[i])
	}
}

func TestFanOut_FailsWholeBatch(t *testing.T) {
	boom := errors.New("boom")
	out, err := FanOut(context.Background(), []int{1, 2, 3, 4, 5}, 0, func(_ context.Context, _ int, v int) (int, error) {
		jitter()
		if v == 3 {
			return 0, boom
		}
		return v * 10, nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, out)
}

func TestFanOut_CancelsRemainingCalls(t *testing.T) {
	boom := errors.New("boom")
	var cancelled atomic.Int32
	_, err := FanOut(context.Background(), []int{0, 1, 2}, 0, func(ctx context.Context, i int, _ int) (int, error) {
		if i == 0 {
			return 0, boom
		}
		select {
		case <-ctx.Done():
			cancelled.Add(1)
			return 0, ctx.Err()
		case <-time.After(5 * time.Second):
			return 1, nil
		}
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(2), cancelled.Load())
}

func TestFanOut_Limit(t *testing.T) {
	var inFlight, peak atomic.Int32
	_, err := FanOut(context.Background(), make([]struct{}, 20), 3, func(_ context.Context, _ int, _ struct{}) (bool, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		jitter()
		inFlight.Add(-1)
		return true, nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestFanOut_Empty(t *testing.T) {
	out, err := FanOut(context.Background(), []string{}, 0, func(context.Context, int, string) (int, error) {
		t.Fatal("not called")
		return 0, nil
	})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestAttachAddresses_JoinsEachPlaceToItsOwnAddress(t *testing.T) {
	tr := newFakeTransport(t, func(u *url.URL) (*RawResponse, error) {
		jitter()
		return okBody(addressBody("address of " + u.Query().Get("place_id"))), nil
	})
	c := newTestClient(tr)
	places := placesWithIDs(25)

	out, err := c.AttachAddresses(context.Background(), places)
	require.NoError(t, err)
	require.Len(t, out, len(places))
	for i, p := range out {
		assert.Equal(t, places[i].PlaceID, p.PlaceID)
		require.Len(t, p.Addresses, 1)
		assert.Equal(t, "address of "+places[i].PlaceID, p.Addresses[0].FormattedAddress)
		assert.Nil(t, places[i].Addresses, "input must not be modified")
	}
	assert.Equal(t, 25, tr.CallsTo(pathGeocode))
}

func TestAttachAddresses_OneFailureFailsBatch(t *testing.T) {
	tr := newFakeTransport(t, func(u *url.URL) (*RawResponse, error) {
		jitter()
		if u.Query().Get("place_id") == "id-04" {
			return &RawResponse{StatusCode: 502, Body: []byte("bad gateway")}, nil
		}
		return okBody(addressBody("ok")), nil
	})
	c := newTestClient(tr)

	out, err := c.AttachAddresses(context.Background(), placesWithIDs(8))
	assert.Nil(t, out)

	var ee *EnrichmentError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 4, ee.Index)
	assert.Equal(t, "id-04", ee.Key)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 502, te.StatusCode)
}

func TestAttachAddresses_LogsOnlyTheRealFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	tr := TransportFunc(func(ctx context.Context, raw string) (*RawResponse, error) {
		if strings.Contains(raw, "place_id=id-00") {
			return &RawResponse{StatusCode: 502, Body: []byte("bad gateway")}, nil
		}
		<-ctx.Done()
		return nil, ctx.Err()
	})
	c := newTestClient(tr)

	_, err := c.AttachAddresses(context.Background(), placesWithIDs(6))
	var ee *EnrichmentError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "id-00", ee.Key)

	entries := logs.FilterMessage("google: enrichment failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "id-00", entries[0].ContextMap()["place_id"])
}

func TestAttachAddressesByLabel_TwoHops(t *testing.T) {
	detailsDone := &seenSet{ids: map[string]bool{}}
	tr := newFakeTransport(t, func(u *url.URL) (*RawResponse, error) {
		jitter()
		switch u.Path {
		case pathDetails:
			id := u.Query().Get("place_id")
			assert.Equal(t, "formatted_address", u.Query().Get("fields"))
			detailsDone.mark(id)
			if id == "id-02" {
				return okBody(`{"status":"OK","result":{"place_id":"id-02"}}`), nil
			}
			return okBody(fmt.Sprintf(`{"status":"OK","result":{"place_id":%q,"formatted_address":"label %s"}}`, id, id)), nil
		case pathGeocode:
			label := u.Query().Get("address")
			id := strings.TrimPrefix(label, "label ")
			assert.True(t, detailsDone.seen(id), "geocode for %s before its details", id)
			return okBody(addressBody("geocoded " + label)), nil
		}
		t.Errorf("unexpected path %s", u.Path)
		return nil, errors.New("unexpected")
	})
	c := newTestClient(tr)
	places := placesWithIDs(6)

	out, err := c.AttachAddressesByLabel(context.Background(), places)
	require.NoError(t, err)
	for i, p := range out {
		if places[i].PlaceID == "id-02" {
			assert.Empty(t, p.Addresses)
			continue
		}
		require.Len(t, p.Addresses, 1)
		assert.Equal(t, "geocoded label "+places[i].PlaceID, p.Addresses[0].FormattedAddress)
	}
	assert.Equal(t, 6, tr.CallsTo(pathDetails))
	assert.Equal(t, 5, tr.CallsTo(pathGeocode))
}

func TestAttachAddressesByLabel_DetailsFailureFailsBatch(t *testing.T) {
	tr := newFakeTransport(t, func(u *url.URL) (*RawResponse, error) {
		if u.Path == pathDetails && u.Query().Get("place_id") == "id-01" {
			return okBody(`{"status":"INVALID_REQUEST","error_message":"bad id"}`), nil
		}
		if u.Path == pathDetails {
			return okBody(`{"status":"OK","result":{"formatted_address":"x"}}`), nil
		}
		return okBody(addressBody("x")), nil
	})
	c := newTestClient(tr)

	out, err := c.AttachAddressesByLabel(context.Background(), placesWithIDs(3))
	assert.Nil(t, out)
	var ee *EnrichmentError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "id-01", ee.Key)
	assert.True(t, IsInvalidRequest(err))
}
