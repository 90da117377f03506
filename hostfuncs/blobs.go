package hostfuncs

import (
	"crypto/sha256"

	"github.com/calimero-network/calimero-sdk-js/domain/entities"
	"go.uber.org/zap"
)

// blobHandle is an open blob: either a writer accumulating content or a
// reader with a cursor over stored content.
type blobHandle struct {
	writer *BoundedBuffer
	data   []byte
	offset int
	id     entities.BlobID
}

func (h *blobHandle) writable() bool {
	return h.writer != nil
}

// allocFd returns the next descriptor. The caller must hold r.mu.
func (r *Runtime) allocFd(h *blobHandle) entities.BlobFd {
	fd := r.nextFd
	r.nextFd++
	r.handles[fd] = h
	return fd
}

// BlobCreate opens a new blob for writing.
func (r *Runtime) BlobCreate() entities.BlobFd {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.allocFd(&blobHandle{writer: NewBoundedBuffer(r.config.maxBlobSize)})
}

// BlobOpen opens a stored blob for reading. It returns entities.InvalidBlobFd
// when id is not a well-formed blob id or the blob is unknown.
func (r *Runtime) BlobOpen(id entities.Buffer) entities.BlobFd {
	blobID, ok := entities.BlobIDFromBytes(id.Bytes())
	if !ok {
		return entities.InvalidBlobFd
	}

	data, found, err := r.config.blobs.Get(blobID)
	if err != nil {
		r.logger.Error("blob lookup failed", zap.Stringer("blob", blobID), zap.Error(err))
		return entities.InvalidBlobFd
	}
	if !found {
		return entities.InvalidBlobFd
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.allocFd(&blobHandle{data: data, id: blobID})
}

// BlobRead copies from the read cursor of fd into dst and returns the count.
// It returns 0 at the end of the blob and for unknown or write descriptors.
func (r *Runtime) BlobRead(fd entities.BlobFd, dst entities.BufferMut) entities.PtrSizedInt {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.handles[fd]
	if !ok || h.writable() {
		return 0
	}
	n := copy(dst.Bytes(), h.data[h.offset:])
	h.offset += n
	return entities.PtrSizedInt(n)
}

// BlobWrite appends data to fd and returns the number of bytes accepted.
// It returns 0 for unknown or read descriptors; a count short of the data
// length means the blob size limit was reached.
func (r *Runtime) BlobWrite(fd entities.BlobFd, data entities.Buffer) entities.PtrSizedInt {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.handles[fd]
	if !ok || !h.writable() {
		return 0
	}
	n, _ := h.writer.Write(data.Bytes())
	return entities.PtrSizedInt(n)
}

// BlobClose closes fd and writes the blob id into dst. For a write handle the
// content is hashed and persisted first. It fails, leaving the handle open,
// when dst is shorter than entities.IDSize or the blob cannot be stored.
func (r *Runtime) BlobClose(fd entities.BlobFd, dst entities.BufferMut) entities.Bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.handles[fd]
	if !ok || dst.Len() < entities.IDSize {
		return entities.False
	}

	if h.writable() {
		content := h.writer.Bytes()
		id := entities.BlobID(sha256.Sum256(content))
		if err := r.config.blobs.Put(id, content); err != nil {
			r.logger.Error("blob store failed", zap.Stringer("blob", id), zap.Error(err))
			return entities.False
		}
		h.id = id
	}

	copy(dst.Bytes(), h.id[:])
	delete(r.handles, fd)
	return entities.True
}
