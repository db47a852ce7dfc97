// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

// A Form is the content of a multipart/form-data POST: plain fields,
// files referenced by path, and in-memory file buffers. Parts are sent
// in that order, each group in insertion order.
type Form struct {
	Fields []Field
	Files  []File
	Data   []FileData
}

// A Field is a plain form field.
type Field struct {
	Name  string
	Value string
}

// A File is a form part whose content is read from the file at Path
// when the request executes.
type File struct {
	Name string
	Path string
}

// A FileData is a form part whose content is an in-memory buffer. It is
// sent as application/octet-stream under the file name FileName.
type FileData struct {
	Name     string
	FileName string
	Data     []byte
}

// SetField sets the field name to value, replacing any existing field
// of the same name.
func (f *Form) SetField(name, value string) {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			f.Fields[i].Value = value
			return
		}
	}
	f.Fields = append(f.Fields, Field{Name: name, Value: value})
}

// AddFile adds a file-by-path part.
func (f *Form) AddFile(name, path string) {
	f.Files = append(f.Files, File{Name: name, Path: path})
}

// AddFileData adds an in-memory file part. The data is not copied.
func (f *Form) AddFileData(name, fileName string, data []byte) {
	f.Data = append(f.Data, FileData{Name: name, FileName: fileName, Data: data})
}
