package service

import (
	"context"
	"testing"

	apperrors "github.com/spec-kit/forum-service/pkg/util"
)

func TestDeleteTagAdminOnly(t *testing.T) {
	tags := newFakeTagRepo()
	svc := NewTagService(tags)
	ctx := context.Background()

	tag, err := tags.EnsureByName(ctx, "go")
	if err != nil {
		t.Fatalf("seed tag: %v", err)
	}

	assertCode(t, svc.DeleteTag(ctx, nil, tag.ID), apperrors.CodeForbidden)
	assertCode(t, svc.DeleteTag(ctx, memberIdentity(1), tag.ID), apperrors.CodeForbidden)

	if err := svc.DeleteTag(ctx, adminIdentity(1), tag.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	assertCode(t, svc.DeleteTag(ctx, adminIdentity(1), tag.ID), apperrors.CodeNotFound)
}

func TestListTagsSorted(t *testing.T) {
	tags := newFakeTagRepo()
	svc := NewTagService(tags)
	ctx := context.Background()

	for _, name := range []string{"testing", "go", "concurrency"} {
		if _, err := tags.EnsureByName(ctx, name); err != nil {
			t.Fatalf("seed tag: %v", err)
		}
	}

	list, err := svc.ListTags(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 tags, got %d", len(list))
	}
	if list[0].Name != "concurrency" || list[2].Name != "testing" {
		t.Fatalf("expected name ordering, got %v", list)
	}
}
