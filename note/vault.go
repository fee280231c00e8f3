package note

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ismaeljda/big-brain/model"
	"golang.org/x/exp/slog"
)

const (
	videosDir = "Videos"
	mocsDir   = "MOCs"
	recentMax = 3
)

// Vault writes notes below the knowledge base root, one folder per category.
type Vault struct {
	root       string
	categories model.Categories
	logger     *slog.Logger
}

func NewVault(root string, categories model.Categories, logger *slog.Logger) *Vault {
	v := &Vault{
		root:       root,
		categories: categories,
		logger:     logger.With(slog.String("component", "vault")),
	}
	if _, err := os.Stat(root); err != nil {
		v.logger.Warn("knowledge base folder not found, it will be created on first note", slog.String("path", root))
	}

	return v
}

func (v *Vault) Render(result model.ProcessingResult) (string, error) {
	cat, err := v.categories.Lookup(result.Category)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := noteTmpl.Execute(&b, newNoteView(result, cat)); err != nil {
		return "", fmt.Errorf("render note: %w", err)
	}

	return b.String(), nil
}

// Filename is the note's file name, without folder.
func (v *Vault) Filename(result model.ProcessingResult) string {
	name := CleanFilename(result.Title)
	if name == "" {
		name = string(result.VideoID)
	}

	return name + ".md"
}

// Save writes the note for result into its category folder, replacing any
// existing note with the same name, and returns the file path.
func (v *Vault) Save(result model.ProcessingResult) (string, error) {
	cat, err := v.categories.Lookup(result.Category)
	if err != nil {
		return "", err
	}
	content, err := v.Render(result)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(v.root, videosDir, cat.Folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create category folder: %w", err)
	}
	path := filepath.Join(dir, v.Filename(result))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write note: %w", err)
	}
	v.logger.Info("note saved", slog.String("path", path), slog.String("category", cat.Key))
	v.checkMOC(cat)

	return path, nil
}

// checkMOC reports whether the category's map of content exists. MOCs are
// maintained by hand and never created here.
func (v *Vault) checkMOC(cat model.Category) {
	if !v.HasMOC(cat) {
		v.logger.Info("moc not found", slog.String("moc", cat.MOC))
		return
	}
	v.logger.Debug("moc found", slog.String("moc", cat.MOC))
}

func (v *Vault) HasMOC(cat model.Category) bool {
	_, err := os.Stat(filepath.Join(v.root, mocsDir, cat.MOC+".md"))
	return err == nil
}

type RecentNote struct {
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Modified time.Time `json:"modified"`
}

type Stats struct {
	TotalNotes  int            `json:"total_notes"`
	ByCategory  map[string]int `json:"by_category"`
	RecentNotes []RecentNote   `json:"recent_notes"`
}

// Stats counts the notes per category folder and lists the most recently
// modified ones of each.
func (v *Vault) Stats() (Stats, error) {
	stats := Stats{
		ByCategory:  map[string]int{},
		RecentNotes: []RecentNote{},
	}

	for _, cat := range v.categories.Sorted() {
		notes, err := v.notesIn(cat)
		if err != nil {
			return Stats{}, err
		}
		if notes == nil {
			continue
		}
		stats.ByCategory[cat.Key] = len(notes)
		stats.TotalNotes += len(notes)

		sort.Slice(notes, func(i, j int) bool { return notes[i].Modified.After(notes[j].Modified) })
		if len(notes) > recentMax {
			notes = notes[:recentMax]
		}
		stats.RecentNotes = append(stats.RecentNotes, notes...)
	}

	return stats, nil
}

// notesIn returns nil when the category folder does not exist.
func (v *Vault) notesIn(cat model.Category) ([]RecentNote, error) {
	dir := filepath.Join(v.root, videosDir, cat.Folder)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read category folder: %w", err)
	}

	notes := []RecentNote{}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		notes = append(notes, RecentNote{
			Name:     strings.TrimSuffix(e.Name(), ".md"),
			Category: cat.Key,
			Modified: info.ModTime(),
		})
	}

	return notes, nil
}
