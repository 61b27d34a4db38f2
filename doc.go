/*
Copyright © 2024 the RasterLab authors.
This file is part of RasterLab.

RasterLab is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

RasterLab is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with RasterLab.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package rasterlab manipulates labeled two-dimensional geospatial grids
// such as digital elevation models and groundwater head fields.
//
// A Grid couples a dense float64 array with named x and y coordinate
// vectors. Grids support elementwise arithmetic between aligned grids,
// relational comparisons producing boolean Masks, and masked
// select-or-replace through Where, WhereValue, and ReplaceWhere.
//
// Missing data is NaN throughout. Because NaN compares false under every
// relational operator, the mask g.GreaterThan(t) and the mask
// g.LessEqual(t) are not logical complements wherever g is missing: both
// are false there. Mask.Not, in contrast, is an exact total inversion.
// This asymmetry matters when thresholding grids that contain nodata
// cells; see ReplaceWhere.
//
// Subpackages idf, ncf, and ascgrid read and write grids in the iMOD IDF
// binary format, NetCDF, and ESRI ASCII formats, and package gridio
// dispatches on file extension. SavePNG renders a grid as a heat map.
package rasterlab

// Version gives the version number of this package.
const Version = "1.2.1"
