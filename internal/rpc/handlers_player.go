package rpc

import (
	"go.uber.org/zap"

	"github.com/gramofon/gramofon/internal/player"
	"github.com/gramofon/gramofon/pkg/remote"
)

func (s *Server) playerQueueFile(params remote.Params) (any, error) {
	id, err := params.Int("id")
	if err != nil {
		return nil, err
	}
	file, err := s.library.File(id)
	if err != nil {
		return nil, err
	}
	s.player.Queue(player.NewFileItem(file))
	return nil, nil
}

func (s *Server) playerQueueDirectory(params remote.Params) (any, error) {
	directoryID, err := params.Int("directory_id")
	if err != nil {
		return nil, err
	}
	dir, err := s.library.Directory(directoryID)
	if err != nil {
		return nil, err
	}
	files, err := s.library.FilesOfDirectory(directoryID)
	if err != nil {
		return nil, err
	}
	s.player.Queue(player.NewDirectoryItem(dir, files))
	return nil, nil
}

func (s *Server) playerQueueAlbum(params remote.Params) (any, error) {
	id, err := params.Int("id")
	if err != nil {
		return nil, err
	}
	album, err := s.library.Album(id)
	if err != nil {
		return nil, err
	}
	files, err := s.library.FilesOfAlbum(id)
	if err != nil {
		return nil, err
	}
	s.player.Queue(player.NewAlbumItem(album, files))
	return nil, nil
}

// playerQueuePlaylist builds the queue tree server-side from the stored
// playlist definition. Entries with an unknown type are skipped, not fatal.
func (s *Server) playerQueuePlaylist(params remote.Params) (any, error) {
	id, err := params.Int("id")
	if err != nil {
		return nil, err
	}
	pl, err := s.library.Playlist(id)
	if err != nil {
		return nil, err
	}

	items := make([]player.QueueItem, 0, len(pl.Entries))
	for _, entry := range pl.Entries {
		switch entry.Type {
		case "file":
			file, err := s.library.File(entry.ItemID)
			if err != nil {
				return nil, err
			}
			items = append(items, player.NewFileItem(file))
		case "directory":
			dir, err := s.library.Directory(entry.ItemID)
			if err != nil {
				return nil, err
			}
			files, err := s.library.FilesOfDirectory(entry.ItemID)
			if err != nil {
				return nil, err
			}
			items = append(items, player.NewDirectoryItem(dir, files))
		case "album":
			album, err := s.library.Album(entry.ItemID)
			if err != nil {
				return nil, err
			}
			files, err := s.library.FilesOfAlbum(entry.ItemID)
			if err != nil {
				return nil, err
			}
			items = append(items, player.NewAlbumItem(album, files))
		default:
			s.log.Warn("skipping unknown playlist entry type",
				zap.Int("playlist", id), zap.String("type", entry.Type))
		}
	}
	s.player.Queue(player.NewPlaylistItem(pl.ID, items))
	return nil, nil
}

func (s *Server) playerQueueGet(remote.Params) (any, error) {
	return EncodeQueue(s.player.Items()), nil
}

func (s *Server) playerQueueRemove(params remote.Params) (any, error) {
	index, err := params.IntSlice("index")
	if err != nil {
		return nil, err
	}
	return nil, s.player.Remove(index)
}

func (s *Server) playerQueueRemoveAll(remote.Params) (any, error) {
	s.player.RemoveAll()
	return nil, nil
}

func (s *Server) playerStatus(remote.Params) (any, error) {
	status := s.player.Status()

	var current any
	if status.Current != nil {
		current = status.Current.ID
	}
	index := make([]any, 0, len(status.Index))
	for _, i := range status.Index {
		index = append(index, i)
	}
	return map[string]any{
		"current":  current,
		"state":    int(status.State),
		"position": status.Position,
		"volume":   status.Volume,
		"index":    index,
	}, nil
}

func (s *Server) playerPlay(remote.Params) (any, error) {
	s.player.Play()
	return nil, nil
}

func (s *Server) playerPause(remote.Params) (any, error) {
	s.player.Pause()
	return nil, nil
}

func (s *Server) playerStop(remote.Params) (any, error) {
	s.player.Stop()
	return nil, nil
}

func (s *Server) playerSeek(params remote.Params) (any, error) {
	seconds, err := params.Int("seconds")
	if err != nil {
		return nil, err
	}
	s.player.Seek(seconds)
	return nil, nil
}

func (s *Server) playerPrev(remote.Params) (any, error) {
	s.player.Prev()
	return nil, nil
}

func (s *Server) playerNext(remote.Params) (any, error) {
	s.player.Next()
	return nil, nil
}

func (s *Server) playerGoto(params remote.Params) (any, error) {
	index, err := params.IntSlice("index")
	if err != nil {
		return nil, err
	}
	return nil, s.player.GoTo(index)
}

func (s *Server) playerGetVolume(remote.Params) (any, error) {
	return s.player.Volume(), nil
}

func (s *Server) playerSetVolume(params remote.Params) (any, error) {
	level, err := params.Int("level")
	if err != nil {
		return nil, err
	}
	s.player.SetVolume(level)
	return nil, nil
}

func (s *Server) playerIncVolume(remote.Params) (any, error) {
	s.player.IncVolume()
	return nil, nil
}

func (s *Server) playerDecVolume(remote.Params) (any, error) {
	s.player.DecVolume()
	return nil, nil
}
