/*
 * errors.go, part of gomd
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
	"fmt"

	md "github.com/rmera/gomd"
)

//CError is the concrete error type of this package.
type CError struct {
	msg  string
	deco []string
}

func (err *CError) Error() string { return err.msg }

//Decorate adds the dec string to the decoration slice of strings of
//the error, and returns the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func errorf(format string, a ...interface{}) *CError {
	return &CError{msg: fmt.Sprintf(format, a...)}
}

func errDecorate(err error, caller string) error {
	err2, ok := err.(md.Error)
	if !ok {
		return &CError{msg: fmt.Sprintf("%s: %s", caller, err.Error())}
	}
	err2.Decorate(caller)
	return err2
}
