// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package draft turns a short author-written draft into a full chapter body.

The server owns the provider key: clients post the current editing buffer of
a chapter and get back replacement text. Nothing is persisted; the author
decides whether to save the result.

Flow:

 1. Gate: the draft must hold at least three whitespace-separated words.
 2. Lookup: the chapter and its novel supply the prompt context.
 3. Lock: one generation per chapter at a time (Redis or in-process).
 4. Generate: a single call to the configured [Generator].
*/
package draft

import (
	"context"
	"errors"
	"time"
)

// Request is the payload accepted by POST /api/chapters/{id}/draft.
// Title and Content are the client's unsaved editing buffers.
type Request struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Response carries the generated chapter body.
type Response struct {
	Content string `json:"content"`
}

// Generator produces text for a prompt. Implementations must honour ctx.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Locker grants exclusive, expiring ownership of a chapter.
type Locker interface {

	/*
		Acquire takes the lock for chapterID for at most ttl.

		Returns:
		  - func(): Releases the lock; safe to call after expiry
		  - error: ErrLocked if another holder owns it
	*/
	Acquire(ctx context.Context, chapterID int64, ttl time.Duration) (release func(), err error)
}

// ErrLocked is returned by a [Locker] when the chapter is already being drafted.
var ErrLocked = errors.New("draft: chapter is locked")

// Field names used in validation details.
const (
	FieldTitle   = "title"
	FieldContent = "content"
)

// TooShortMessage is shown when the draft fails the word gate.
const TooShortMessage = "يرجى كتابة 3 كلمات على الأقل لكي يتمكن الذكاء الاصطناعي من فهم فكرتك وتوليد فصل كامل."
