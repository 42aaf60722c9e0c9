// Package registry models the slice of the Windows registry that BAM
// extraction reads: keys with typed values, and sources that enumerate them.
package registry

import "fmt"

// ValueKind is the registry type tag stored with every value.
// The numbers align with the Windows REG_* definitions.
type ValueKind uint32

const (
	None           ValueKind = 0
	String         ValueKind = 1
	ExpandString   ValueKind = 2
	Binary         ValueKind = 3
	DWord          ValueKind = 4
	DWordBigEndian ValueKind = 5
	Link           ValueKind = 6
	MultiString    ValueKind = 7
	ResourceList   ValueKind = 8
	QWord          ValueKind = 11
)

func (k ValueKind) String() string {
	switch k {
	case None:
		return "REG_NONE"
	case String:
		return "REG_SZ"
	case ExpandString:
		return "REG_EXPAND_SZ"
	case Binary:
		return "REG_BINARY"
	case DWord:
		return "REG_DWORD"
	case DWordBigEndian:
		return "REG_DWORD_BIG_ENDIAN"
	case Link:
		return "REG_LINK"
	case MultiString:
		return "REG_MULTI_SZ"
	case ResourceList:
		return "REG_RESOURCE_LIST"
	case QWord:
		return "REG_QWORD"
	default:
		return fmt.Sprintf("REG_UNKNOWN_%d", uint32(k))
	}
}

// Value is one raw registry value: its name, undecoded payload and kind tag.
type Value struct {
	Name string
	Data []byte
	Kind ValueKind
}

// Subkey is a key together with its values in enumeration order.
type Subkey struct {
	Name   string
	Values []Value
}
