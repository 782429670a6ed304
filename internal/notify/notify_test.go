package notify

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type flakyNotifier struct {
	blocked map[int64]bool
	sent    []int64
}

func (f *flakyNotifier) Send(_ context.Context, userID int64, _ Message) error {
	if f.blocked[userID] {
		return errors.New("forbidden: bot was blocked by the user")
	}
	f.sent = append(f.sent, userID)
	return nil
}

func TestBroadcastSkipsFailedRecipients(t *testing.T) {
	n := &flakyNotifier{blocked: map[int64]bool{2: true, 4: true}}
	res := Broadcast(context.Background(), n, zap.NewNop(), []int64{1, 2, 3, 4, 5}, Message{Text: "hi"})

	if res.Sent != 3 || res.Skipped != 2 {
		t.Fatalf("sent=%d skipped=%d, want 3/2", res.Sent, res.Skipped)
	}
	if len(res.Failed) != 2 || res.Failed[0] != 2 || res.Failed[1] != 4 {
		t.Errorf("failed = %v, want [2 4]", res.Failed)
	}
	// delivery to later recipients must not be affected by earlier failures
	if len(n.sent) != 3 || n.sent[2] != 5 {
		t.Errorf("delivered = %v", n.sent)
	}
}

func TestBroadcastEmpty(t *testing.T) {
	n := &flakyNotifier{}
	res := Broadcast(context.Background(), n, zap.NewNop(), nil, Message{Text: "hi"})
	if res.Sent != 0 || res.Skipped != 0 {
		t.Errorf("res = %+v", res)
	}
}
