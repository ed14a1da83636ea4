/*
 * stf.go, part of gomd
 *
 * Copyright 2025 Raul Mera <rmeraa{at}academicosDOTutaDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package simulate

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	v3 "github.com/rmera/gomd/v3"
)

//STFWriter writes a zstd-compressed, plain-text trajectory: a header
//of key=value lines, then "** natoms", then one "x y z" line per atom
//per frame in fixed-point nm, each frame closed by a "*" line that
//optionally carries the box. Cheap to write, cheap to parse, and
//compresses to a fraction of an equivalent PDB.
type STFWriter struct {
	f      *os.File
	h      *zstd.Encoder
	natoms int
	prec   float64
}

//NewSTFWriter creates an STF trajectory for natoms atoms. prec is the
//number of decimals kept, 3 (a thousandth of a nm) if zero.
func NewSTFWriter(name string, natoms int, prec int) (*STFWriter, error) {
	if prec <= 0 {
		prec = 3
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	h, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		f.Close()
		return nil, err
	}
	W := &STFWriter{f: f, h: h, natoms: natoms, prec: math.Pow(10, float64(prec))}
	fmt.Fprintf(W.h, "prec=%d\n", prec)
	fmt.Fprintf(W.h, "** %d\n", natoms)
	return W, nil
}

//WNext writes the next frame, with the box (a1 a2 a3, nm) appended to
//the frame terminator if given.
func (W *STFWriter) WNext(coord *v3.Matrix, box ...[3]float64) error {
	if W.h == nil {
		return errorf("STFWriter: writing to a closed trajectory")
	}
	if coord.NVecs() != W.natoms {
		return errorf("STFWriter: got %d coordinates, want %d", coord.NVecs(), W.natoms)
	}
	x := coord.Raw()
	for i := 0; i < W.natoms; i++ {
		fmt.Fprintf(W.h, "%d %d %d\n",
			int(math.RoundToEven(x[3*i]*W.prec)),
			int(math.RoundToEven(x[3*i+1]*W.prec)),
			int(math.RoundToEven(x[3*i+2]*W.prec)))
	}
	if len(box) > 0 && box[0][0] > 0 {
		fmt.Fprintf(W.h, "* %.4f %.4f %.4f\n", box[0][0], box[0][1], box[0][2])
	} else {
		fmt.Fprint(W.h, "*\n")
	}
	return nil
}

//Len returns the number of atoms per frame.
func (W *STFWriter) Len() int { return W.natoms }

//Close flushes the compressor and closes the file. The trajectory is
//unreadable without this call.
func (W *STFWriter) Close() error {
	if W.h == nil {
		return nil
	}
	err := W.h.Close()
	if err2 := W.f.Close(); err == nil {
		err = err2
	}
	W.h = nil
	return err
}

//STFReporter writes an STF frame at each report.
type STFReporter struct {
	w        *STFWriter
	interval int
}

//NewSTFReporter returns an STFReporter writing to the file name
//given, every interval steps.
func NewSTFReporter(name string, interval, natoms int) (*STFReporter, error) {
	w, err := NewSTFWriter(name, natoms, 0)
	if err != nil {
		return nil, err
	}
	return &STFReporter{w: w, interval: interval}, nil
}

func (R *STFReporter) Interval() int { return R.interval }

func (R *STFReporter) Report(st *State) error {
	return R.w.WNext(st.Positions, st.Box)
}

func (R *STFReporter) Close() error { return R.w.Close() }

//STFReader reads trajectories written by STFWriter.
type STFReader struct {
	f        *os.File
	d        *zstd.Decoder
	r        *bufio.Reader
	name     string
	natoms   int
	prec     float64
	readable bool
}

//NewSTFReader opens an STF trajectory and parses its header.
func NewSTFReader(name string) (*STFReader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	d, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	R := &STFReader{f: f, d: d, r: bufio.NewReader(d), name: name, prec: 1000}
	for {
		line, err := R.r.ReadString('\n')
		if err != nil {
			R.Close()
			return nil, errorf("STFReader: truncated header in %s", name)
		}
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "** ") {
			R.natoms, err = strconv.Atoi(strings.TrimPrefix(line, "** "))
			if err != nil {
				R.Close()
				return nil, errorf("STFReader: bad atom count %q in %s", line, name)
			}
			break
		}
		if k, v, ok := strings.Cut(line, "="); ok && k == "prec" {
			if p, err := strconv.Atoi(v); err == nil {
				R.prec = math.Pow(10, float64(p))
			}
		}
	}
	R.readable = true
	return R, nil
}

//Len returns the number of atoms per frame.
func (R *STFReader) Len() int { return R.natoms }

//Readable returns whether more frames can be read.
func (R *STFReader) Readable() bool { return R.readable }

//Next reads the next frame into output, which must hold Len vectors.
//A nil output skips the frame. At the end of the trajectory it
//returns a md.LastFrameError-compatible EOF error.
func (R *STFReader) Next(output *v3.Matrix, box ...[]float64) error {
	if !R.readable {
		return errorf("STFReader: reading from a closed trajectory")
	}
	for i := 0; i < R.natoms; i++ {
		line, err := R.r.ReadString('\n')
		if err != nil {
			R.readable = false
			if i == 0 {
				return &lastFrameError{fileName: R.name}
			}
			return errorf("STFReader: truncated frame")
		}
		if output == nil {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return errorf("STFReader: malformed coordinate line %q", strings.TrimSpace(line))
		}
		x := output.Raw()
		for d := 0; d < 3; d++ {
			iv, err := strconv.Atoi(fields[d])
			if err != nil {
				return errorf("STFReader: malformed coordinate %q", fields[d])
			}
			x[3*i+d] = float64(iv) / R.prec
		}
	}
	line, err := R.r.ReadString('\n')
	if err != nil || !strings.HasPrefix(line, "*") {
		R.readable = false
		return errorf("STFReader: missing frame terminator")
	}
	if len(box) > 0 && box[0] != nil {
		fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(line), "*"))
		for d := 0; d < 3 && d < len(fields) && d < len(box[0]); d++ {
			if v, err := strconv.ParseFloat(fields[d], 64); err == nil {
				box[0][d] = v
			}
		}
	}
	return nil
}

//Close releases the decompressor and the file.
func (R *STFReader) Close() error {
	R.readable = false
	if R.d != nil {
		R.d.Close()
		R.d = nil
	}
	if R.f != nil {
		err := R.f.Close()
		R.f = nil
		return err
	}
	return nil
}

//lastFrameError signals a normal end of trajectory. It implements
//md.LastFrameError so callers can filter it in a typeswitch.
type lastFrameError struct {
	fileName string
}

func (E *lastFrameError) Error() string { return "EOF" }
func (E *lastFrameError) Decorate(dec string) []string {
	return nil
}
func (E *lastFrameError) FileName() string            { return E.fileName }
func (E *lastFrameError) Format() string              { return "stf" }
func (E *lastFrameError) Critical() bool              { return false }
func (E *lastFrameError) NormalLastFrameTermination() {}
