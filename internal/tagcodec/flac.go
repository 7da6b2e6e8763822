package tagcodec

import (
	"fmt"
	"path/filepath"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"

	"github.com/tempo-importer/tempo-importer/internal/tagkey"
)

// flacCodec implements Codec over a FLAC file's Vorbis comment block and its
// embedded PICTURE metadata blocks.
type flacCodec struct {
	file          *flac.File
	comment       *flacvorbis.MetaDataBlockVorbisComment
	commentIndex  int // index into file.Meta, or -1 if no comment block existed yet.
}

func openFLAC(path string) (Codec, error) {
	f, err := flac.ParseFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err) //nolint:errorlint // Wraps a non-error-chain library error.
	}

	codec := &flacCodec{file: f, commentIndex: -1}

	for idx, meta := range f.Meta {
		if meta.Type != flac.VorbisComment {
			continue
		}

		comment, parseErr := flacvorbis.ParseFromMetaDataBlock(*meta)
		if parseErr != nil {
			continue
		}

		codec.comment = comment
		codec.commentIndex = idx

		break
	}

	if codec.comment == nil {
		codec.comment = flacvorbis.New()
	}

	return codec, nil
}

func (c *flacCodec) Get(key tagkey.Key) []string {
	fields, ok := flacKeys[key]
	if !ok {
		return nil
	}

	var values []string

	for _, field := range fields {
		got, err := c.comment.Get(field)
		if err != nil {
			continue
		}

		values = append(values, got...)
	}

	return values
}

func (c *flacCodec) Set(key tagkey.Key, values []string) error {
	fields, ok := flacKeys[key]
	if !ok {
		return ErrNotSupported
	}

	for _, field := range fields {
		_ = c.comment.Delete(field)

		for _, value := range values {
			if err := c.comment.Add(field, value); err != nil {
				return fmt.Errorf("tagcodec: set FLAC field %s: %w", field, err)
			}
		}
	}

	return nil
}

func (c *flacCodec) Clear() {
	c.comment = flacvorbis.New()

	var kept []*flac.MetaDataBlock

	for _, meta := range c.file.Meta {
		if meta.Type == flac.VorbisComment || meta.Type == flac.Picture {
			continue
		}

		kept = append(kept, meta)
	}

	c.file.Meta = kept
	c.commentIndex = -1
}

func (c *flacCodec) Pictures() []tagkey.Picture {
	var pictures []tagkey.Picture

	for _, meta := range c.file.Meta {
		if meta.Type != flac.Picture {
			continue
		}

		picture, err := flacpicture.ParseFromMetaDataBlock(*meta)
		if err != nil {
			continue
		}

		pictures = append(pictures, tagkey.Picture{
			MIMEType:    picture.MIME,
			Type:        tagkey.PictureType(picture.PictureType),
			Description: picture.Description,
			Data:        picture.ImageData,
		})
	}

	return pictures
}

func (c *flacCodec) SetPictures(pictures []tagkey.Picture) {
	var kept []*flac.MetaDataBlock

	for _, meta := range c.file.Meta {
		if meta.Type == flac.Picture {
			continue
		}

		kept = append(kept, meta)
	}

	c.file.Meta = kept

	for _, picture := range pictures {
		block, err := flacpicture.NewFromImageData(
			flacpicture.PictureType(picture.Type), picture.Description, picture.Data, picture.MIMEType)
		if err != nil {
			continue
		}

		blockMeta := block.Marshal()
		c.file.Meta = append(c.file.Meta, &blockMeta)
	}
}

func (c *flacCodec) Write(path string) error {
	commentMeta := c.comment.Marshal()

	if c.commentIndex >= 0 && c.commentIndex < len(c.file.Meta) {
		c.file.Meta[c.commentIndex] = &commentMeta
	} else {
		c.file.Meta = append(c.file.Meta, &commentMeta)
		c.commentIndex = len(c.file.Meta) - 1
	}

	return c.file.Save(path)
}
