// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	slice4llOpg6paKkMYjqY4btlDgΞΞ = ord.NewSliceSer[[]float32](slice8UKIEisScX5aOhyu0IfDjAΞΞ)
	slice8UKIEisScX5aOhyu0IfDjAΞΞ = ord.NewSliceSer[float32](varint.Float32)
	slicelb52Σ6waMWPDYXyXXvJBsQΞΞ = ord.NewSliceSer[IndexedRegulation](IndexedRegulationMUS)
)

var IDMUS = iDMUS{}

type iDMUS struct{}

func (s iDMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s iDMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ID(tmp)
	return
}

func (s iDMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s iDMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var RegulationStatusMUS = regulationStatusMUS{}

type regulationStatusMUS struct{}

func (s regulationStatusMUS) Marshal(v RegulationStatus, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s regulationStatusMUS) Unmarshal(bs []byte) (v RegulationStatus, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v = RegulationStatus(tmp)
	return
}

func (s regulationStatusMUS) Size(v RegulationStatus) (size int) {
	return varint.Int.Size(int(v))
}

func (s regulationStatusMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var ChangeTypeMUS = changeTypeMUS{}

type changeTypeMUS struct{}

func (s changeTypeMUS) Marshal(v ChangeType, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s changeTypeMUS) Unmarshal(bs []byte) (v ChangeType, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ChangeType(tmp)
	return
}

func (s changeTypeMUS) Size(v ChangeType) (size int) {
	return varint.Int.Size(int(v))
}

func (s changeTypeMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var RegulationMUS = regulationMUS{}

type regulationMUS struct{}

func (s regulationMUS) Marshal(v Regulation, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Chapter, bs[n:])
	n += ord.String.Marshal(v.Subchapter, bs[n:])
	n += ord.String.Marshal(v.Part, bs[n:])
	n += ord.String.Marshal(v.SectionRange, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	n += ord.String.Marshal(v.URL, bs[n:])
	n += RegulationStatusMUS.Marshal(v.Status, bs[n:])
	n += ord.String.Marshal(v.StatusReason, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.LastUpdated, bs[n:])
}

func (s regulationMUS) Unmarshal(bs []byte) (v Regulation, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Chapter, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Subchapter, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Part, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SectionRange, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Description, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.URL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Status, n1, err = RegulationStatusMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.StatusReason, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.LastUpdated, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s regulationMUS) Size(v Regulation) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Chapter)
	size += ord.String.Size(v.Subchapter)
	size += ord.String.Size(v.Part)
	size += ord.String.Size(v.SectionRange)
	size += ord.String.Size(v.Description)
	size += ord.String.Size(v.URL)
	size += RegulationStatusMUS.Size(v.Status)
	size += ord.String.Size(v.StatusReason)
	return size + raw.TimeUnixMicro.Size(v.LastUpdated)
}

func (s regulationMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = RegulationStatusMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var ChangeRecordMUS = changeRecordMUS{}

type changeRecordMUS struct{}

func (s changeRecordMUS) Marshal(v ChangeRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += IDMUS.Marshal(v.RegulationId, bs[n:])
	n += ChangeTypeMUS.Marshal(v.ChangeType, bs[n:])
	n += ord.String.Marshal(v.FieldName, bs[n:])
	n += ord.String.Marshal(v.OldValue, bs[n:])
	n += ord.String.Marshal(v.NewValue, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.DetectedAt, bs[n:])
	return n + ord.Bool.Marshal(v.Notified, bs[n:])
}

func (s changeRecordMUS) Unmarshal(bs []byte) (v ChangeRecord, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.RegulationId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ChangeType, n1, err = ChangeTypeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.FieldName, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.OldValue, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.NewValue, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.DetectedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Notified, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	return
}

func (s changeRecordMUS) Size(v ChangeRecord) (size int) {
	size = IDMUS.Size(v.Id)
	size += IDMUS.Size(v.RegulationId)
	size += ChangeTypeMUS.Size(v.ChangeType)
	size += ord.String.Size(v.FieldName)
	size += ord.String.Size(v.OldValue)
	size += ord.String.Size(v.NewValue)
	size += raw.TimeUnixMicro.Size(v.DetectedAt)
	return size + ord.Bool.Size(v.Notified)
}

func (s changeRecordMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = IDMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ChangeTypeMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.Bool.Skip(bs[n:])
	n += n1
	return
}

var IndexedRegulationMUS = indexedRegulationMUS{}

type indexedRegulationMUS struct{}

func (s indexedRegulationMUS) Marshal(v IndexedRegulation, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Chapter, bs[n:])
	n += ord.String.Marshal(v.Subchapter, bs[n:])
	n += ord.String.Marshal(v.Part, bs[n:])
	n += ord.String.Marshal(v.SectionRange, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	n += ord.String.Marshal(v.Status, bs[n:])
	return n + ord.String.Marshal(v.URL, bs[n:])
}

func (s indexedRegulationMUS) Unmarshal(bs []byte) (v IndexedRegulation, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Chapter, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Subchapter, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Part, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SectionRange, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Description, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Status, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.URL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s indexedRegulationMUS) Size(v IndexedRegulation) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Chapter)
	size += ord.String.Size(v.Subchapter)
	size += ord.String.Size(v.Part)
	size += ord.String.Size(v.SectionRange)
	size += ord.String.Size(v.Description)
	size += ord.String.Size(v.Status)
	return size + ord.String.Size(v.URL)
}

func (s indexedRegulationMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}

var IndexSnapshotMUS = indexSnapshotMUS{}

type indexSnapshotMUS struct{}

func (s indexSnapshotMUS) Marshal(v IndexSnapshot, bs []byte) (n int) {
	n = varint.Int.Marshal(v.Dim, bs)
	n += slicelb52Σ6waMWPDYXyXXvJBsQΞΞ.Marshal(v.Entries, bs[n:])
	return n + slice4llOpg6paKkMYjqY4btlDgΞΞ.Marshal(v.Vectors, bs[n:])
}

func (s indexSnapshotMUS) Unmarshal(bs []byte) (v IndexSnapshot, n int, err error) {
	v.Dim, n, err = varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Entries, n1, err = slicelb52Σ6waMWPDYXyXXvJBsQΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vectors, n1, err = slice4llOpg6paKkMYjqY4btlDgΞΞ.Unmarshal(bs[n:])
	n += n1
	return
}

func (s indexSnapshotMUS) Size(v IndexSnapshot) (size int) {
	size = varint.Int.Size(v.Dim)
	size += slicelb52Σ6waMWPDYXyXXvJBsQΞΞ.Size(v.Entries)
	return size + slice4llOpg6paKkMYjqY4btlDgΞΞ.Size(v.Vectors)
}

func (s indexSnapshotMUS) Skip(bs []byte) (n int, err error) {
	n, err = varint.Int.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = slicelb52Σ6waMWPDYXyXXvJBsQΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slice4llOpg6paKkMYjqY4btlDgΞΞ.Skip(bs[n:])
	n += n1
	return
}

var RefreshInfoMUS = refreshInfoMUS{}

type refreshInfoMUS struct{}

func (s refreshInfoMUS) Marshal(v RefreshInfo, bs []byte) (n int) {
	n = ord.String.Marshal(v.JobID, bs)
	n += raw.TimeUnixMicro.Marshal(v.CompletedAt, bs[n:])
	n += varint.Int.Marshal(v.Total, bs[n:])
	return n + varint.Int.Marshal(v.Changes, bs[n:])
}

func (s refreshInfoMUS) Unmarshal(bs []byte) (v RefreshInfo, n int, err error) {
	v.JobID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.CompletedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Total, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Changes, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return
}

func (s refreshInfoMUS) Size(v RefreshInfo) (size int) {
	size = ord.String.Size(v.JobID)
	size += raw.TimeUnixMicro.Size(v.CompletedAt)
	size += varint.Int.Size(v.Total)
	return size + varint.Int.Size(v.Changes)
}

func (s refreshInfoMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	return
}
