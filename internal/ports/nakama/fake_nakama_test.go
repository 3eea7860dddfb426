package nakama

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// fakeNakama implements the parts of runtime.NakamaModule the adapters use.
type fakeNakama struct {
	runtime.NakamaModule

	objects map[string]*api.StorageObject
	matches []*api.Match
	created []string
	query   string
	maxSize int
	failAll bool
	// signal routes MatchSignal calls; without it every match is unknown.
	signal func(matchID, data string) (string, error)
}

func newFakeNakama() *fakeNakama {
	return &fakeNakama{objects: make(map[string]*api.StorageObject)}
}

func (f *fakeNakama) StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error) {
	if f.failAll {
		return nil, errors.New("storage unavailable")
	}
	acks := make([]*api.StorageObjectAck, 0, len(writes))
	for _, w := range writes {
		id := w.Collection + "/" + w.UserID + "/" + w.Key
		if _, exists := f.objects[id]; exists && w.Version == "*" {
			return nil, runtime.ErrStorageRejectedVersion
		}
		f.objects[id] = &api.StorageObject{
			Collection: w.Collection,
			Key:        w.Key,
			UserId:     w.UserID,
			Value:      w.Value,
		}
		acks = append(acks, &api.StorageObjectAck{Collection: w.Collection, Key: w.Key, UserId: w.UserID})
	}
	return acks, nil
}

func (f *fakeNakama) StorageList(ctx context.Context, callerID, userID, collection string, limit int, cursor string) ([]*api.StorageObject, string, error) {
	if f.failAll {
		return nil, "", errors.New("storage unavailable")
	}
	var objs []*api.StorageObject
	for _, o := range f.objects {
		if o.Collection == collection && o.UserId == userID {
			objs = append(objs, o)
		}
	}
	sort.Slice(objs, func(i, j int) bool { return objs[i].Key < objs[j].Key })

	start := 0
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil {
			return nil, "", errors.New("bad cursor")
		}
		start = n
	}
	end := min(start+limit, len(objs))
	next := ""
	if end < len(objs) {
		next = strconv.Itoa(end)
	}
	return objs[start:end], next, nil
}

func (f *fakeNakama) MatchList(ctx context.Context, limit int, authoritative bool, label string, minSize, maxSize *int, query string) ([]*api.Match, error) {
	if f.failAll {
		return nil, errors.New("match list unavailable")
	}
	f.query = query
	if maxSize != nil {
		f.maxSize = *maxSize
	}
	return f.matches, nil
}

func (f *fakeNakama) MatchCreate(ctx context.Context, module string, params map[string]interface{}) (string, error) {
	id := "match-" + strconv.Itoa(len(f.created)+1) + ":" + module
	f.created = append(f.created, id)
	return id, nil
}

func (f *fakeNakama) MatchSignal(ctx context.Context, id string, data string) (string, error) {
	if f.signal == nil {
		return "", errors.New("match not found")
	}
	return f.signal(id, data)
}

// routeSignals sends MatchSignal calls for matchID to the harness handler.
func (f *fakeNakama) routeSignals(matchID string, h *matchHarness) {
	f.signal = func(id, data string) (string, error) {
		if id != matchID {
			return "", errors.New("match not found")
		}
		_, answer := h.handler.MatchSignal(context.Background(), noopLogger{}, nil, f, h.dispatcher, h.tick, h.state, data)
		return answer, nil
	}
}
