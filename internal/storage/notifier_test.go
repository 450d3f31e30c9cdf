package storage

import (
	"testing"
	"time"
)

func TestNotifier_PublishSubscribe(t *testing.T) {
	n := NewNotifier()
	ch1, cancel1 := n.Subscribe(4)
	ch2, cancel2 := n.Subscribe(4)
	defer cancel2()

	n.Publish(Change{Topic: TopicItems, Op: "insert", ID: "a"})

	for i, ch := range []<-chan Change{ch1, ch2} {
		select {
		case c := <-ch:
			if c.ID != "a" || c.Topic != TopicItems {
				t.Errorf("subscriber %d got %+v", i, c)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d did not receive change", i)
		}
	}

	cancel1()
	cancel1() // idempotent
	if got := n.Subscribers(); got != 1 {
		t.Errorf("Subscribers() = %d, want 1", got)
	}
	if _, ok := <-ch1; ok {
		t.Error("cancelled subscription channel should be closed")
	}
}

func TestNotifier_SlowSubscriberDoesNotBlock(t *testing.T) {
	n := NewNotifier()
	_, cancel := n.Subscribe(1)
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			n.Publish(Change{Topic: TopicItems, Op: "update"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}
}

func TestNotifier_Nil(t *testing.T) {
	var n *Notifier
	n.Publish(Change{Topic: TopicItems})
	if n.Subscribers() != 0 {
		t.Error("nil notifier should have no subscribers")
	}
}
