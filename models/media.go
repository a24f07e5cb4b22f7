package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MediaKind tags the variant held by a Media value.
type MediaKind int8

const (
	MediaNone MediaKind = iota
	MediaRemote
	MediaUploaded
)

func (k MediaKind) String() string {
	switch k {
	case MediaRemote:
		return "remote"
	case MediaUploaded:
		return "uploaded"
	default:
		return "none"
	}
}

// Media is either nothing, a reference to a remote file, or a raw file that
// still has to be uploaded.
type Media struct {
	Kind        MediaKind
	Name        string
	URL         string
	ContentType string
	Data        []byte
}

// RemoteMedia references an already hosted file.
func RemoteMedia(url, name string) Media {
	return Media{Kind: MediaRemote, URL: url, Name: name}
}

// UploadedMedia holds a local file payload awaiting upload.
func UploadedMedia(name, contentType string, data []byte) Media {
	return Media{Kind: MediaUploaded, Name: name, ContentType: contentType, Data: data}
}

func (m Media) IsZero() bool { return m.Kind == MediaNone }

type remoteMediaJSON struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url"`
}

func (m Media) MarshalJSON() ([]byte, error) {
	switch m.Kind {
	case MediaNone:
		return []byte("null"), nil
	case MediaRemote:
		if m.Name == "" {
			return json.Marshal(m.URL)
		}
		return json.Marshal(remoteMediaJSON{Name: m.Name, URL: m.URL})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnresolvedMedia, m.Name)
	}
}

func (m *Media) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*m = Media{}
		return nil
	case data[0] == '"':
		var url string
		if err := json.Unmarshal(data, &url); err != nil {
			return err
		}
		if url == "" {
			*m = Media{}
			return nil
		}
		*m = RemoteMedia(url, "")
		return nil
	case data[0] == '{':
		var raw remoteMediaJSON
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if raw.URL == "" {
			*m = Media{}
			return nil
		}
		*m = RemoteMedia(raw.URL, raw.Name)
		return nil
	default:
		return fmt.Errorf("media: unsupported JSON value %s", data)
	}
}
