//go:build darwin

package clip

// #cgo CFLAGS: -x objective-c
// #cgo LDFLAGS: -framework Cocoa
// #import <Cocoa/Cocoa.h>
// #include <stdlib.h>
// #include <string.h>
//
// static NSInteger pasteboard_change_count(void) {
//     return [[NSPasteboard generalPasteboard] changeCount];
// }
//
// static void pasteboard_clear(void) {
//     @autoreleasepool {
//         [[NSPasteboard generalPasteboard] clearContents];
//     }
// }
//
// static int pasteboard_set(const char *uti, const void *data, size_t n) {
//     @autoreleasepool {
//         NSString *type = [NSString stringWithUTF8String:uti];
//         NSData *d = [NSData dataWithBytes:data length:n];
//         return [[NSPasteboard generalPasteboard] setData:d forType:type] ? 1 : 0;
//     }
// }
//
// static void *pasteboard_get(const char *uti, size_t *n) {
//     @autoreleasepool {
//         *n = 0;
//         NSString *type = [NSString stringWithUTF8String:uti];
//         NSData *d = [[NSPasteboard generalPasteboard] dataForType:type];
//         if (d == nil || [d length] == 0) {
//             return NULL;
//         }
//         void *buf = malloc([d length]);
//         if (buf == NULL) {
//             return NULL;
//         }
//         memcpy(buf, [d bytes], [d length]);
//         *n = [d length];
//         return buf;
//     }
// }
//
// static int pasteboard_has(const char *uti) {
//     @autoreleasepool {
//         NSString *type = [NSString stringWithUTF8String:uti];
//         NSArray *types = [[NSPasteboard generalPasteboard] types];
//         return [types containsObject:type] ? 1 : 0;
//     }
// }
import "C"

import (
	"fmt"
	"unsafe"
)

type darwinBackend struct{}

// New returns the macOS NSPasteboard backend. Representations are read and
// written strictly by UTI; the pasteboard's own promise-based conversion is
// not requested.
func New() Backend {
	return &darwinBackend{}
}

func (b *darwinBackend) Name() string { return "macOS NSPasteboard" }

func (b *darwinBackend) Types() ([]Type, error) {
	var out []Type
	for _, t := range []Type{TypeText, TypePNG, TypeTIFF} {
		cs := C.CString(string(t))
		ok := C.pasteboard_has(cs) != 0
		C.free(unsafe.Pointer(cs))
		if ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (b *darwinBackend) Read(t Type) ([]byte, error) {
	if !t.Known() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, t)
	}
	cs := C.CString(string(t))
	defer C.free(unsafe.Pointer(cs))

	var n C.size_t
	buf := C.pasteboard_get(cs, &n)
	if buf == nil {
		return nil, nil
	}
	defer C.free(buf)
	return C.GoBytes(buf, C.int(n)), nil
}

// Write clears the pasteboard once and then attaches every item, so all
// representations belong to the same change.
func (b *darwinBackend) Write(items []Item) error {
	for _, it := range items {
		if !it.Type.Known() {
			return fmt.Errorf("%w: %s", ErrUnsupported, it.Type)
		}
	}
	C.pasteboard_clear()
	for _, it := range items {
		if err := setData(it); err != nil {
			return err
		}
	}
	return nil
}

func setData(it Item) error {
	cs := C.CString(string(it.Type))
	defer C.free(unsafe.Pointer(cs))

	var p unsafe.Pointer
	if len(it.Data) > 0 {
		p = C.CBytes(it.Data)
		defer C.free(p)
	}
	if C.pasteboard_set(cs, p, C.size_t(len(it.Data))) == 0 {
		return fmt.Errorf("NSPasteboard rejected %s", it.Type)
	}
	return nil
}

func (b *darwinBackend) Clear() error {
	C.pasteboard_clear()
	return nil
}

func (b *darwinBackend) ChangeCount() (int64, error) {
	return int64(C.pasteboard_change_count()), nil
}
