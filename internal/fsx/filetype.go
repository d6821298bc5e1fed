package fsx

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// FileType is the tagged sum of file kinds fcp knows how to dispatch on.
type FileType uint8

const (
	Regular FileType = iota
	Directory
	Symlink
	Fifo
	Socket
	CharacterDevice
	BlockDevice
)

func (t FileType) String() string {
	switch t {
	case Regular:
		return "regular file"
	case Directory:
		return "directory"
	case Symlink:
		return "symbolic link"
	case Fifo:
		return "fifo"
	case Socket:
		return "socket"
	case CharacterDevice:
		return "character device"
	case BlockDevice:
		return "block device"
	default:
		return "unknown file type"
	}
}

// Metadata is the subset of struct stat fields fcp actually uses: the mode
// (for permission bits and classification), the inode (for identity
// comparison), and the size (for regular files). Mode is kept as a raw
// st_mode & 0o7777 value, not translated into an [io/fs.FileMode], so it
// can be passed straight through to the golang.org/x/sys/unix calls that
// create the destination (Mkdir, Mkfifo, Open) without Go's FileMode
// reinterpreting the setuid/setgid/sticky bits.
type Metadata struct {
	Mode uint32
	Ino  uint64
	Size int64
}

// Lstat classifies path without following a trailing symbolic link,
// performing exactly one lstat(2) call. The returned Metadata is carried
// alongside the FileType so callers never need to stat the same path
// twice.
func Lstat(path string) (FileType, Metadata, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return 0, Metadata{}, wrapPath(path, err)
	}
	return classify(path, st)
}

// Stat is like Lstat but follows a trailing symbolic link. It is used only
// where the dispatcher needs to know whether a destination operand is an
// existing directory (§4.6); every traversal-time classification uses
// Lstat so that symlinks are never dereferenced while walking a tree.
func Stat(path string) (FileType, Metadata, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, Metadata{}, wrapPath(path, err)
	}
	return classify(path, st)
}

func classify(path string, st unix.Stat_t) (FileType, Metadata, error) {
	md := Metadata{
		Mode: uint32(st.Mode) & 0o7777,
		Ino:  uint64(st.Ino),
		Size: int64(st.Size),
	}
	switch uint32(st.Mode) & unix.S_IFMT {
	case unix.S_IFREG:
		return Regular, md, nil
	case unix.S_IFDIR:
		return Directory, md, nil
	case unix.S_IFLNK:
		return Symlink, md, nil
	case unix.S_IFIFO:
		return Fifo, md, nil
	case unix.S_IFSOCK:
		return Socket, md, nil
	case unix.S_IFCHR:
		return CharacterDevice, md, nil
	case unix.S_IFBLK:
		return BlockDevice, md, nil
	default:
		panic(fmt.Sprintf("fsx: %s: unclassifiable file mode %#o", path, st.Mode))
	}
}
