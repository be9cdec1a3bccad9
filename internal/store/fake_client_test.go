package store

import (
	"context"
	"encoding/json"
	"sync"

	"operadoras/internal/domain"
)

type fakeCall struct {
	Path   string
	Params domain.Params
}

type fakeReply struct {
	body string
	err  error
	// gate, when set, blocks the reply until it is closed.
	gate chan struct{}
}

// fakeClient answers by path and records every request.
type fakeClient struct {
	mu      sync.Mutex
	replies map[string]fakeReply
	calls   []fakeCall
	started chan string
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		replies: map[string]fakeReply{},
		started: make(chan string, 16),
	}
}

func (f *fakeClient) reply(path, body string) *fakeClient {
	f.mu.Lock()
	f.replies[path] = fakeReply{body: body}
	f.mu.Unlock()
	return f
}

func (f *fakeClient) fail(path string, err error) *fakeClient {
	f.mu.Lock()
	f.replies[path] = fakeReply{err: err}
	f.mu.Unlock()
	return f
}

func (f *fakeClient) block(path string, gate chan struct{}) {
	f.mu.Lock()
	reply := f.replies[path]
	reply.gate = gate
	f.replies[path] = reply
	f.mu.Unlock()
}

func (f *fakeClient) Calls() []fakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fakeCall(nil), f.calls...)
}

func (f *fakeClient) Get(ctx context.Context, path string, params domain.Params) (*domain.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fakeCall{Path: path, Params: params})
	reply, ok := f.replies[path]
	f.mu.Unlock()
	f.started <- path

	if reply.gate != nil {
		select {
		case <-reply.gate:
		case <-ctx.Done():
			return nil, domain.ConnectivityError("GET "+path, ctx.Err())
		}
	}
	if !ok {
		return nil, domain.ServerError("GET "+path, 404, "")
	}
	if reply.err != nil {
		return nil, reply.err
	}
	return &domain.Response{Status: 200, Body: json.RawMessage(reply.body)}, nil
}
