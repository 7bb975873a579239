package models

import "time"

// * Commit as listed on a branch. Never mutated after it leaves the GitHub client.
type Commit struct {
	SHA         string    `json:"sha"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email"`
	Timestamp   time.Time `json:"timestamp"`
	Message     string    `json:"message"`
}

// * CommitDetail carries the per-file change stats of a single commit
type CommitDetail struct {
	SHA          string   `json:"sha"`
	LinesAdded   int      `json:"lines_added"`
	LinesRemoved int      `json:"lines_removed"`
	FilesChanged []string `json:"files_changed"`
}

// * AuthorKey identifies a contributor by exact name and email
type AuthorKey struct {
	Name  string
	Email string
}

func (c Commit) Author() AuthorKey {
	return AuthorKey{Name: c.AuthorName, Email: c.AuthorEmail}
}

type Branch struct {
	Name           string `json:"name"`
	CommitSHA      string `json:"commit_sha"`
	LastCommitDate string `json:"last_commit_date"`
	IsDefault      bool   `json:"is_default"`
}

// * FileDiff is one file entry of a compare between two commits
type FileDiff struct {
	Filename string `json:"filename"`
	Patch    string `json:"patch,omitempty"`
}

// * TreeEntry is a blob in a repository tree
type TreeEntry struct {
	Path string `json:"path"`
	SHA  string `json:"sha"`
	Size int    `json:"size"`
}
