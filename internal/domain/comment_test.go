package domain

import (
	"strings"
	"testing"
)

func TestNewComment(t *testing.T) {
	c := NewComment("article-1", "user-1", "nice read")

	if c.ParentID != nil {
		t.Error("root comment has a parent")
	}
	if c.Status != CommentActive {
		t.Errorf("status = %q, want active", c.Status)
	}

	events := c.PendingEvents()
	if len(events) != 1 || events[0].Name != EventCommentCreated {
		t.Fatalf("events = %v, want one comment.created", events)
	}
	payload := events[0].Payload.(CommentCreatedPayload)
	if payload.ArticleID != "article-1" || payload.AuthorID != "user-1" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestNewReply(t *testing.T) {
	t.Run("reply to root succeeds", func(t *testing.T) {
		root := NewComment("article-1", "user-1", "root")

		reply, err := NewReply(root, "user-2", "reply")
		if err != nil {
			t.Fatalf("NewReply() error = %v", err)
		}
		if reply.ParentID == nil || *reply.ParentID != root.ID {
			t.Error("reply not linked to parent")
		}
		if reply.ArticleID != root.ArticleID {
			t.Error("reply article id differs from parent")
		}

		payload := reply.PendingEvents()[0].Payload.(ReplyCreatedPayload)
		if payload.ParentAuthorID != "user-1" {
			t.Errorf("parent author = %q, want user-1", payload.ParentAuthorID)
		}
	})

	t.Run("reply to reply fails with nesting_too_deep", func(t *testing.T) {
		root := NewComment("article-1", "user-1", "root")
		reply, err := NewReply(root, "user-2", "reply")
		if err != nil {
			t.Fatalf("NewReply() error = %v", err)
		}

		if _, err := NewReply(reply, "user-3", "too deep"); err != ErrNestingTooDeep {
			t.Errorf("NewReply(reply) error = %v, want ErrNestingTooDeep", err)
		}
	})
}

func TestComment_Edit(t *testing.T) {
	c := NewComment("article-1", "user-1", "original")

	if err := c.Edit("updated"); err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if c.Content != "updated" || c.Status != CommentEdited {
		t.Errorf("comment = %+v, want edited content", c)
	}

	c.Delete()
	if err := c.Edit("again"); err != ErrCannotEditDeleted {
		t.Errorf("Edit() on deleted error = %v, want ErrCannotEditDeleted", err)
	}
}

func TestComment_Delete(t *testing.T) {
	c := NewComment("article-1", "user-1", "body")
	c.ClearEvents()

	c.Delete()
	if c.Status != CommentDeleted {
		t.Fatalf("status = %q, want deleted", c.Status)
	}
	if len(c.PendingEvents()) != 1 {
		t.Fatalf("events = %d, want 1", len(c.PendingEvents()))
	}

	c.Delete()
	if len(c.PendingEvents()) != 1 {
		t.Error("repeated delete emitted another event")
	}
}

func TestCommentExcerpt(t *testing.T) {
	long := strings.Repeat("x", 500)
	c := NewComment("article-1", "user-1", long)

	payload := c.PendingEvents()[0].Payload.(CommentCreatedPayload)
	if len(payload.Excerpt) != commentExcerptLength {
		t.Errorf("excerpt length = %d, want %d", len(payload.Excerpt), commentExcerptLength)
	}
}
