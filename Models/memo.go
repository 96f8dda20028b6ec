package Models

// MemoItem is one line of a user's memo pad.
type MemoItem struct {
	ID      string `json:"id" firestore:"id"`
	Text    string `json:"text" firestore:"text"`
	Checked bool   `json:"checked" firestore:"checked"`
}

// MemoList is the single document holding a user's whole memo pad. Saves
// replace the list wholesale, last writer wins.
type MemoList struct {
	Items []MemoItem `json:"items" firestore:"items"`
}

// SaveMemosRequest is the POST /memos payload.
type SaveMemosRequest struct {
	Items []MemoItem `json:"items" validate:"required"`
}
