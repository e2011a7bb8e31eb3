package library

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/dhowden/tag"
	"go.uber.org/zap"
)

// Indexer receives records discovered during a scan.
type Indexer interface {
	EnsureArtist(name string) (int, error)
	EnsureAlbum(artistID int, name string) (int, error)
	EnsureDirectory(parentID int, name string) (int, error)
	UpsertFile(f File) error
}

// Scanner walks media roots and feeds tagged files into an Indexer.
type Scanner struct {
	log     *zap.Logger
	index   Indexer
	roots   []string
	exts    map[string]struct{}
	running atomic.Bool
}

// NewScanner creates a scanner over the given roots.
func NewScanner(log *zap.Logger, index Indexer, roots []string, exts []string) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	if len(exts) == 0 {
		exts = []string{".mp3", ".flac", ".ogg", ".m4a", ".wav"}
	}
	extSet := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		extSet[strings.ToLower(ext)] = struct{}{}
	}
	return &Scanner{log: log, index: index, roots: roots, exts: extSet}
}

// Trigger starts a scan in the background. It returns false when a scan is
// already in flight; the caller never waits for completion.
func (s *Scanner) Trigger() bool {
	if !s.running.CompareAndSwap(false, true) {
		return false
	}
	go func() {
		defer s.running.Store(false)
		if err := s.Scan(); err != nil {
			s.log.Warn("library scan failed", zap.Error(err))
		}
	}()
	return true
}

// Scan walks every root synchronously.
func (s *Scanner) Scan() error {
	for _, root := range s.roots {
		if err := s.scanRoot(root); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scanner) scanRoot(root string) error {
	root = filepath.Clean(root)
	rootID, err := s.index.EnsureDirectory(0, filepath.Base(root))
	if err != nil {
		return err
	}

	dirIDs := map[string]int{root: rootID}

	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			s.log.Warn("scan entry skipped", zap.String("path", path), zap.Error(err))
			return nil
		}
		if entry.IsDir() {
			if path == root {
				return nil
			}
			parentID := dirIDs[filepath.Dir(path)]
			id, err := s.index.EnsureDirectory(parentID, entry.Name())
			if err != nil {
				return err
			}
			dirIDs[path] = id
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if _, ok := s.exts[ext]; !ok {
			return nil
		}
		file := s.probe(path, entry.Name(), ext)
		file.DirectoryID = dirIDs[filepath.Dir(path)]
		if err := s.index.UpsertFile(file); err != nil {
			return err
		}
		return nil
	})
}

// probe reads tags from one media file. Untaggable files are still indexed
// with whatever the filename gives us.
func (s *Scanner) probe(path string, name string, ext string) File {
	file := File{
		Path:  path,
		Name:  name,
		Codec: strings.TrimPrefix(ext, "."),
	}

	handle, err := os.Open(path)
	if err != nil {
		s.log.Debug("probe open failed", zap.String("path", path), zap.Error(err))
		return file
	}
	defer handle.Close()

	meta, err := tag.ReadFrom(handle)
	if err != nil {
		s.log.Debug("probe tags failed", zap.String("path", path), zap.Error(err))
		return file
	}

	file.Title = meta.Title()
	file.Year = meta.Year()
	track, _ := meta.Track()
	file.TrackIndex = track

	if artist := strings.TrimSpace(meta.Artist()); artist != "" {
		if id, err := s.index.EnsureArtist(artist); err == nil {
			file.ArtistID = id
		}
	}
	if album := strings.TrimSpace(meta.Album()); album != "" {
		if id, err := s.index.EnsureAlbum(file.ArtistID, album); err == nil {
			file.AlbumID = id
		}
	}
	return file
}
