// Package session holds the in-progress resume an author is editing: the
// resume data, the selected template, uploaded attachment blobs, and the
// export gate for that resume.
package session

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sync"
	"time"

	"resume-builder/internal/export"
	"resume-builder/internal/model"

	"github.com/spf13/afero"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrClosed   = errors.New("session closed")
	ErrNoEntry  = errors.New("entry not found")
)

// AttachmentURLScheme prefixes the session-scoped URL of a blob.
const AttachmentURLScheme = "blob:"

type Session struct {
	ID        string
	CreatedAt time.Time

	mu      sync.RWMutex
	data    model.ResumeData
	tpl     model.TemplateConfig
	closed  bool
	fs      afero.Fs
	control export.Control
}

func newSession(id string, fs afero.Fs) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		tpl:       model.DefaultTemplate(),
		fs:        fs,
	}
}

// Snapshot returns deep copies taken under one read lock, so an export
// sees a consistent resume while edits continue.
func (s *Session) Snapshot() (model.ResumeData, model.TemplateConfig) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone(), s.tpl
}

// Control gates exports of this session's resume.
func (s *Session) Control() *export.Control { return &s.control }

// SetData replaces the resume. Attachments are owned by the session and
// survive the replacement.
func (s *Session) SetData(d model.ResumeData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	atts := s.data.Attachments
	s.data = d.Clone()
	s.data.Attachments = atts
	return nil
}

// Update mutates the resume in place under the write lock.
func (s *Session) Update(fn func(d *model.ResumeData)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	fn(&s.data)
	return nil
}

// SetTemplate selects a catalog template and returns the one it replaced.
func (s *Session) SetTemplate(id string) (prev, next model.TemplateConfig, err error) {
	tpl, ok := model.Template(id)
	if !ok {
		return model.TemplateConfig{}, model.TemplateConfig{}, fmt.Errorf("template %q: %w", id, ErrNoEntry)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return model.TemplateConfig{}, model.TemplateConfig{}, ErrClosed
	}
	prev = s.tpl
	s.tpl = tpl
	return prev, tpl, nil
}

func (s *Session) AddExperience() (model.Experience, error) {
	e := model.NewExperience()
	return e, s.Update(func(d *model.ResumeData) { d.Experiences = append(d.Experiences, e) })
}

func (s *Session) AddEducation() (model.Education, error) {
	e := model.NewEducation()
	return e, s.Update(func(d *model.ResumeData) { d.Education = append(d.Education, e) })
}

func (s *Session) AddSkill(name string) (model.Skill, error) {
	e := model.NewSkill(name)
	return e, s.Update(func(d *model.ResumeData) { d.Skills = append(d.Skills, e) })
}

func (s *Session) AddProject() (model.Project, error) {
	e := model.NewProject()
	return e, s.Update(func(d *model.ResumeData) { d.Projects = append(d.Projects, e) })
}

func (s *Session) AddCertification() (model.Certification, error) {
	e := model.NewCertification()
	return e, s.Update(func(d *model.ResumeData) { d.Certifications = append(d.Certifications, e) })
}

func (s *Session) AddLanguage(name string) (model.Language, error) {
	e := model.NewLanguage(name)
	return e, s.Update(func(d *model.ResumeData) { d.Languages = append(d.Languages, e) })
}

// RemoveEntry deletes the list entry with id from whichever list holds it.
// Attachments are removed with RemoveAttachment instead.
func (s *Session) RemoveEntry(id string) error {
	found := false
	err := s.Update(func(d *model.ResumeData) {
		found = removeByID(&d.Experiences, id, func(e model.Experience) string { return e.ID }) ||
			removeByID(&d.Education, id, func(e model.Education) string { return e.ID }) ||
			removeByID(&d.Skills, id, func(e model.Skill) string { return e.ID }) ||
			removeByID(&d.Projects, id, func(e model.Project) string { return e.ID }) ||
			removeByID(&d.Certifications, id, func(e model.Certification) string { return e.ID }) ||
			removeByID(&d.Languages, id, func(e model.Language) string { return e.ID })
	})
	if err != nil {
		return err
	}
	if !found {
		return ErrNoEntry
	}
	return nil
}

func removeByID[T any](list *[]T, id string, key func(T) string) bool {
	for i, e := range *list {
		if key(e) == id {
			*list = append((*list)[:i:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Session) blobDir() string { return path.Join("/sessions", s.ID) }

// AddAttachment stores the blob read from r and records it on the resume.
func (s *Session) AddAttachment(name string, r io.Reader) (model.Attachment, error) {
	id := model.NewID()
	p := path.Join(s.blobDir(), id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return model.Attachment{}, ErrClosed
	}
	if err := s.fs.MkdirAll(s.blobDir(), 0o755); err != nil {
		return model.Attachment{}, err
	}
	f, err := s.fs.Create(p)
	if err != nil {
		return model.Attachment{}, err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = s.fs.Remove(p)
		return model.Attachment{}, fmt.Errorf("read attachment %q: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return model.Attachment{}, err
	}

	att := model.Attachment{ID: id, Name: name, Handle: p, URL: AttachmentURLScheme + id}
	s.data.Attachments = append(s.data.Attachments, att)
	return att, nil
}

func (s *Session) OpenAttachment(id string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.data.Attachments {
		if a.ID == id {
			return s.fs.OpenFile(a.Handle, os.O_RDONLY, 0)
		}
	}
	return nil, ErrNoEntry
}

// RemoveAttachment drops the record and releases its blob.
func (s *Session) RemoveAttachment(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.data.Attachments {
		if a.ID == id {
			s.data.Attachments = append(s.data.Attachments[:i:i], s.data.Attachments[i+1:]...)
			return s.fs.Remove(a.Handle)
		}
	}
	return ErrNoEntry
}

// Close releases every blob still held. Further edits fail with ErrClosed.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.data.Attachments = nil
	return s.fs.RemoveAll(s.blobDir())
}
