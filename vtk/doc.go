// Package vtk reads and writes VTK XML files.
//
// Writers collect fields for a grid and write them as .vtu (unstructured
// grid) or .vti (image data) files, as .pvd time series or as parallel .pvtu
// collections. Data arrays are encoded as ascii, base64 or raw bytes, either
// inlined in their DataArray elements or appended after the XML body, and
// binary data may be block compressed with lz4, zlib or lzma.
//
// Options left automatic are resolved when writing:
//
//	w := vtk.NewUnstructuredGridWriter(g, vtk.WithCompressor(vtk.ZLib))
//	w.SetPointField("pressure", grid.PointField(g, pressure))
//	name, err := w.WriteFile("out")
//
// Readers parse the XML structure and return lazy fields that decode their
// data only when serialized.
package vtk
